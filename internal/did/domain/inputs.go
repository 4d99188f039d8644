package domain

import (
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// CreateDocumentInput carries the fields for a new DID document. The signing
// key must be the private half of PublicKey; the resulting version 1 is
// self-signed with it.
type CreateDocumentInput struct {
	Controller string
	Algorithm  keystore.Algorithm
	PublicKey  []byte
	SigningKey []byte
	Services   []ServiceEndpoint
	Metadata   *DatasetMetadata
}

// UpdateDocumentInput carries a partial update against a base version.
// Zero-valued fields are left unchanged.
type UpdateDocumentInput struct {
	DID              string
	BaseVersion      uint64
	Controller       string
	AddServices      []ServiceEndpoint
	RemoveServiceIDs []string
	Metadata         *DatasetMetadata

	// SigningEpoch selects the active key the caller signs with; SigningKey
	// is its private half.
	SigningEpoch uint64
	SigningKey   []byte
}

// RotateKeyInput appends a new active verification key. The old key stays
// active until explicitly revoked, allowing brief overlap during rotation.
type RotateKeyInput struct {
	DID          string
	BaseVersion  uint64
	NewAlgorithm keystore.Algorithm
	NewPublicKey []byte

	SigningEpoch uint64
	SigningKey   []byte
}

// RevokeKeyInput marks the key at RevokeEpoch revoked. Revoking the last
// active key freezes the document.
type RevokeKeyInput struct {
	DID         string
	BaseVersion uint64
	RevokeEpoch uint64

	SigningEpoch uint64
	SigningKey   []byte
}
