package usecase

import (
	"context"
	"time"
)

// ledgerUseCase implements LedgerUseCase over the two revocation
// repositories.
type ledgerUseCase struct {
	tokenRepo TokenRevocationRepository
	keyRepo   KeyRevocationRepository
}

// NewLedgerUseCase creates a new LedgerUseCase with the provided
// repositories.
func NewLedgerUseCase(tokenRepo TokenRevocationRepository, keyRepo KeyRevocationRepository) LedgerUseCase {
	return &ledgerUseCase{tokenRepo: tokenRepo, keyRepo: keyRepo}
}

// RevokeToken appends the token id to the ledger. The timestamp recorded is
// the first revocation; repeats are acknowledged without rewriting it.
func (u *ledgerUseCase) RevokeToken(ctx context.Context, tokenID string) error {
	return u.tokenRepo.Revoke(ctx, tokenID, time.Now().UTC())
}

// RevokeKey appends the key epoch to the ledger.
func (u *ledgerUseCase) RevokeKey(ctx context.Context, did string, keyEpoch uint64) error {
	return u.keyRepo.Revoke(ctx, did, keyEpoch, time.Now().UTC())
}

// IsTokenRevoked reports whether the token id appears in the ledger.
func (u *ledgerUseCase) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	revokedAt, err := u.tokenRepo.RevokedAt(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return revokedAt != nil, nil
}

// TokenRevokedAt returns when the token was revoked, or nil if it never was.
func (u *ledgerUseCase) TokenRevokedAt(ctx context.Context, tokenID string) (*time.Time, error) {
	return u.tokenRepo.RevokedAt(ctx, tokenID)
}

// KeyRevokedAt returns when the key epoch was revoked, or nil if it never
// was. Verification under the non-retroactive policy compares this against
// each token's issue time.
func (u *ledgerUseCase) KeyRevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	return u.keyRepo.RevokedAt(ctx, did, keyEpoch)
}
