// Package usecase implements the revocation ledger: the append-only record
// of revoked capability tokens and DID keys consulted on every verification.
package usecase

import (
	"context"
	"time"
)

// TokenRevocationRepository persists revoked token identifiers.
type TokenRevocationRepository interface {
	// Revoke records the token id. Recording the same id twice is a no-op.
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error
	// RevokedAt returns when the token was revoked, or nil if it never was.
	RevokedAt(ctx context.Context, tokenID string) (*time.Time, error)
}

// KeyRevocationRepository persists revoked DID key epochs.
type KeyRevocationRepository interface {
	Revoke(ctx context.Context, did string, keyEpoch uint64, revokedAt time.Time) error
	RevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error)
}

// LedgerUseCase is the revocation ledger surface the other modules depend
// on. Writes are durable before the call returns; reads never consult a
// cache that could lag a completed write.
type LedgerUseCase interface {
	RevokeToken(ctx context.Context, tokenID string) error
	RevokeKey(ctx context.Context, did string, keyEpoch uint64) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	TokenRevokedAt(ctx context.Context, tokenID string) (*time.Time, error)
	KeyRevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error)
}
