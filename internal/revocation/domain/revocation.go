// Package domain defines the revocation ledger entry types.
package domain

import "time"

// RevokedToken is an append-only ledger entry for a revoked capability token.
type RevokedToken struct {
	TokenID   string    `json:"token_id"`
	RevokedAt time.Time `json:"revoked_at"`
}

// RevokedKey is an append-only ledger entry for a revoked DID verification
// key, identified by its epoch within the document.
type RevokedKey struct {
	DID       string    `json:"did"`
	KeyEpoch  uint64    `json:"key_epoch"`
	RevokedAt time.Time `json:"revoked_at"`
}
