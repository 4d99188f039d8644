package domain

import (
	"time"

	"github.com/publiish/bio-did-seq/internal/keystore"
)

// IssueRootInput carries the fields for a self-signed root token. The
// signing key must be the private half of the issuer's key at SigningEpoch.
type IssueRootInput struct {
	IssuerDID   string
	AudienceDID string
	Scope       Scope
	Actions     Actions
	ExpiresAt   *time.Time

	SigningEpoch uint64
	SigningKey   []byte
}

// DelegateInput carries the fields for an attenuated child token. The
// delegator is the parent token's audience; Scope and Actions must be
// subsets of the parent's.
type DelegateInput struct {
	ParentID    string
	AudienceDID string
	Scope       Scope
	Actions     Actions
	ExpiresAt   *time.Time

	SigningEpoch uint64
	SigningKey   []byte
}

// KeyMaterial pairs an algorithm with raw key bytes for callers that manage
// keys outside the engine.
type KeyMaterial struct {
	Algorithm keystore.Algorithm
	Key       []byte
}
