// Package domain defines the DID document model.
//
// A document is an append-only sequence of versions keyed by the DID string.
// Each version carries the full verification-key history, service endpoints
// and dataset metadata, and is signed with one of its own active keys. Prior
// versions stay resolvable for audit with the superseded flag set.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/publiish/bio-did-seq/internal/keystore"
)

// KeyStatus is the lifecycle state of a verification key entry.
type KeyStatus string

const (
	KeyStatusActive  KeyStatus = "active"
	KeyStatusRevoked KeyStatus = "revoked"
)

// VerificationKey is one entry in a document's ordered key sequence.
// Epochs are assigned sequentially starting at 1 and never reused, so a
// (DID, epoch) pair identifies exactly one key across rotations.
type VerificationKey struct {
	Epoch     uint64             `json:"epoch"`
	Algorithm keystore.Algorithm `json:"algorithm"`
	PublicKey []byte             `json:"publicKey"`
	Status    KeyStatus          `json:"status"`
	AddedAt   time.Time          `json:"addedAt"`
}

// ServiceEndpoint references an external service in a DID document.
type ServiceEndpoint struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Endpoint string `json:"serviceEndpoint"`
}

// Researcher credits a dataset contributor.
type Researcher struct {
	Name        string `json:"name"`
	ORCID       string `json:"orcid,omitempty"`
	Role        string `json:"role,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// DatasetMetadata describes the research dataset a DID identifies.
type DatasetMetadata struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Researchers []Researcher `json:"researchers,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	License     string       `json:"license,omitempty"`
	DOI         string       `json:"doi,omitempty"`
}

// Document is one version of a DID document.
type Document struct {
	DID        string            `json:"id"`
	Controller string            `json:"controller"`
	Keys       []VerificationKey `json:"verificationMethod"`
	Services   []ServiceEndpoint `json:"service,omitempty"`
	Metadata   *DatasetMetadata  `json:"metadata,omitempty"`
	Version    uint64            `json:"version"`
	CreatedAt  time.Time         `json:"created"`
	UpdatedAt  time.Time         `json:"updated"`

	// SigningEpoch is the epoch of the key that produced Signature.
	SigningEpoch uint64 `json:"signingEpoch"`
	// Signature covers the canonical serialization of all preceding fields.
	Signature []byte `json:"signature"`

	// Superseded marks versions replaced by a newer publication. It is a
	// storage flag, not part of the signed content.
	Superseded bool `json:"-"`
}

// NewDID generates a fresh method-specific identifier, e.g. did:bio:<uuidv7>.
func NewDID(method string) string {
	return fmt.Sprintf("did:%s:%s", method, uuid.Must(uuid.NewV7()))
}

// KeyByEpoch returns the verification key with the given epoch.
func (d *Document) KeyByEpoch(epoch uint64) (*VerificationKey, bool) {
	for i := range d.Keys {
		if d.Keys[i].Epoch == epoch {
			return &d.Keys[i], true
		}
	}
	return nil, false
}

// ActiveKeys returns the currently active verification keys.
func (d *Document) ActiveKeys() []VerificationKey {
	var active []VerificationKey
	for _, key := range d.Keys {
		if key.Status == KeyStatusActive {
			active = append(active, key)
		}
	}
	return active
}

// Frozen reports whether every verification key is revoked. A frozen
// document can no longer be updated.
func (d *Document) Frozen() bool {
	return len(d.ActiveKeys()) == 0
}

// NextEpoch returns the epoch number for the next appended key.
func (d *Document) NextEpoch() uint64 {
	var max uint64
	for _, key := range d.Keys {
		if key.Epoch > max {
			max = key.Epoch
		}
	}
	return max + 1
}

// Clone returns a deep copy of the document, used to build version N+1
// without mutating the resolved base.
func (d *Document) Clone() *Document {
	clone := *d
	clone.Keys = make([]VerificationKey, len(d.Keys))
	copy(clone.Keys, d.Keys)
	clone.Services = make([]ServiceEndpoint, len(d.Services))
	copy(clone.Services, d.Services)
	if d.Metadata != nil {
		metadata := *d.Metadata
		metadata.Researchers = append([]Researcher(nil), d.Metadata.Researchers...)
		metadata.Keywords = append([]string(nil), d.Metadata.Keywords...)
		clone.Metadata = &metadata
	}
	clone.Signature = append([]byte(nil), d.Signature...)
	return &clone
}
