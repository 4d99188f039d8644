package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/publiish/bio-did-seq/internal/database"
	"github.com/publiish/bio-did-seq/internal/errors"
	revocationUsecase "github.com/publiish/bio-did-seq/internal/revocation/usecase"
)

// MySQLTokenRevocationRepository implements TokenRevocationRepository using
// MySQL.
type MySQLTokenRevocationRepository struct {
	db *sql.DB
}

// NewMySQLTokenRevocationRepository creates a new MySQL-backed token
// revocation repository.
func NewMySQLTokenRevocationRepository(db *sql.DB) revocationUsecase.TokenRevocationRepository {
	return &MySQLTokenRevocationRepository{db: db}
}

// Revoke appends the token id to the ledger. INSERT IGNORE keeps repeated
// revocations idempotent without disturbing the original timestamp.
func (r *MySQLTokenRevocationRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	query := `INSERT IGNORE INTO revoked_tokens (token_id, revoked_at) VALUES (?, ?)`

	querier := database.GetTx(ctx, r.db)
	if _, err := querier.ExecContext(ctx, query, tokenID, revokedAt); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// RevokedAt returns the revocation timestamp, or nil for a live token.
func (r *MySQLTokenRevocationRepository) RevokedAt(ctx context.Context, tokenID string) (*time.Time, error) {
	query := `SELECT revoked_at FROM revoked_tokens WHERE token_id = ?`

	querier := database.GetTx(ctx, r.db)
	var revokedAt time.Time
	err := querier.QueryRowContext(ctx, query, tokenID).Scan(&revokedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query token revocation")
	}
	return &revokedAt, nil
}

// MySQLKeyRevocationRepository implements KeyRevocationRepository using
// MySQL.
type MySQLKeyRevocationRepository struct {
	db *sql.DB
}

// NewMySQLKeyRevocationRepository creates a new MySQL-backed key revocation
// repository.
func NewMySQLKeyRevocationRepository(db *sql.DB) revocationUsecase.KeyRevocationRepository {
	return &MySQLKeyRevocationRepository{db: db}
}

func (r *MySQLKeyRevocationRepository) Revoke(ctx context.Context, did string, keyEpoch uint64, revokedAt time.Time) error {
	query := `INSERT IGNORE INTO revoked_keys (did, key_epoch, revoked_at) VALUES (?, ?, ?)`

	querier := database.GetTx(ctx, r.db)
	if _, err := querier.ExecContext(ctx, query, did, keyEpoch, revokedAt); err != nil {
		return errors.Wrap(err, "failed to revoke key")
	}
	return nil
}

func (r *MySQLKeyRevocationRepository) RevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	query := `SELECT revoked_at FROM revoked_keys WHERE did = ? AND key_epoch = ?`

	querier := database.GetTx(ctx, r.db)
	var revokedAt time.Time
	err := querier.QueryRowContext(ctx, query, did, keyEpoch).Scan(&revokedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query key revocation")
	}
	return &revokedAt, nil
}
