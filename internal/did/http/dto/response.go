package dto

import "time"

// VerificationKeyResponse is the wire form of a verification key entry.
type VerificationKeyResponse struct {
	Epoch     uint64    `json:"epoch"`
	Algorithm string    `json:"algorithm"`
	PublicKey string    `json:"public_key"`
	Status    string    `json:"status"`
	AddedAt   time.Time `json:"added_at"`
}

// DocumentResponse represents a DID document in API responses.
type DocumentResponse struct {
	DID          string                    `json:"did"`
	Controller   string                    `json:"controller"`
	Keys         []VerificationKeyResponse `json:"keys"`
	Services     []ServiceEndpointDTO      `json:"services,omitempty"`
	Metadata     *MetadataDTO              `json:"metadata,omitempty"`
	Version      uint64                    `json:"version"`
	Superseded   bool                      `json:"superseded"`
	SigningEpoch uint64                    `json:"signing_epoch"`
	Signature    string                    `json:"signature"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}
