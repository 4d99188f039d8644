package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenRevocationRepository struct {
	mock.Mock
}

func (m *mockTokenRevocationRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *mockTokenRevocationRepository) RevokedAt(ctx context.Context, tokenID string) (*time.Time, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

type mockKeyRevocationRepository struct {
	mock.Mock
}

func (m *mockKeyRevocationRepository) Revoke(ctx context.Context, did string, keyEpoch uint64, revokedAt time.Time) error {
	args := m.Called(ctx, did, keyEpoch, revokedAt)
	return args.Error(0)
}

func (m *mockKeyRevocationRepository) RevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	args := m.Called(ctx, did, keyEpoch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func TestLedgerUseCase_RevokeToken(t *testing.T) {
	ctx := context.Background()
	tokenRepo := &mockTokenRevocationRepository{}
	keyRepo := &mockKeyRevocationRepository{}
	uc := NewLedgerUseCase(tokenRepo, keyRepo)

	tokenRepo.On("Revoke", ctx, "tok-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	require.NoError(t, uc.RevokeToken(ctx, "tok-1"))
	tokenRepo.AssertExpectations(t)
}

func TestLedgerUseCase_IsTokenRevoked(t *testing.T) {
	ctx := context.Background()

	t.Run("Revoked", func(t *testing.T) {
		tokenRepo := &mockTokenRevocationRepository{}
		uc := NewLedgerUseCase(tokenRepo, &mockKeyRevocationRepository{})

		revokedAt := time.Now().UTC()
		tokenRepo.On("RevokedAt", ctx, "tok-1").Return(&revokedAt, nil).Once()

		revoked, err := uc.IsTokenRevoked(ctx, "tok-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Live", func(t *testing.T) {
		tokenRepo := &mockTokenRevocationRepository{}
		uc := NewLedgerUseCase(tokenRepo, &mockKeyRevocationRepository{})

		tokenRepo.On("RevokedAt", ctx, "tok-2").Return(nil, nil).Once()

		revoked, err := uc.IsTokenRevoked(ctx, "tok-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestLedgerUseCase_KeyRevokedAt(t *testing.T) {
	ctx := context.Background()
	keyRepo := &mockKeyRevocationRepository{}
	uc := NewLedgerUseCase(&mockTokenRevocationRepository{}, keyRepo)

	revokedAt := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	keyRepo.On("RevokedAt", ctx, "did:bio:abc", uint64(3)).Return(&revokedAt, nil).Once()

	got, err := uc.KeyRevokedAt(ctx, "did:bio:abc", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, revokedAt, *got)
}
