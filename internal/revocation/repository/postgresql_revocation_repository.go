// Package repository provides SQL persistence for the revocation ledger.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/publiish/bio-did-seq/internal/database"
	"github.com/publiish/bio-did-seq/internal/errors"
	revocationUsecase "github.com/publiish/bio-did-seq/internal/revocation/usecase"
)

// PostgreSQLTokenRevocationRepository implements TokenRevocationRepository
// using PostgreSQL.
type PostgreSQLTokenRevocationRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRevocationRepository creates a new PostgreSQL-backed
// token revocation repository.
func NewPostgreSQLTokenRevocationRepository(db *sql.DB) revocationUsecase.TokenRevocationRepository {
	return &PostgreSQLTokenRevocationRepository{db: db}
}

// Revoke appends the token id to the ledger. ON CONFLICT DO NOTHING keeps
// repeated revocations idempotent without disturbing the original timestamp.
func (r *PostgreSQLTokenRevocationRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token_id, revoked_at)
		VALUES ($1, $2)
		ON CONFLICT (token_id) DO NOTHING
	`

	querier := database.GetTx(ctx, r.db)
	if _, err := querier.ExecContext(ctx, query, tokenID, revokedAt); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// RevokedAt returns the revocation timestamp, or nil for a live token.
func (r *PostgreSQLTokenRevocationRepository) RevokedAt(ctx context.Context, tokenID string) (*time.Time, error) {
	query := `SELECT revoked_at FROM revoked_tokens WHERE token_id = $1`

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

// PostgreSQLKeyRevocationRepository implements KeyRevocationRepository using
// PostgreSQL.
type PostgreSQLKeyRevocationRepository struct {
	db *sql.DB
}

// NewPostgreSQLKeyRevocationRepository creates a new PostgreSQL-backed key
// revocation repository.
func NewPostgreSQLKeyRevocationRepository(db *sql.DB) revocationUsecase.KeyRevocationRepository {
	return &PostgreSQLKeyRevocationRepository{db: db}
}

func (r *PostgreSQLKeyRevocationRepository) Revoke(ctx context.Context, did string, keyEpoch uint64, revokedAt time.Time) error {
	query := `
		INSERT INTO revoked_keys (did, key_epoch, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (did, key_epoch) DO NOTHING
	`

	querier := database.GetTx(ctx, r.db)
	if _, err := querier.ExecContext(ctx, query, did, keyEpoch, revokedAt); err != nil {
		return errors.Wrap(err, "failed to revoke key")
	}
	return nil
}

func (r *PostgreSQLKeyRevocationRepository) RevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	query := `SELECT revoked_at FROM revoked_keys WHERE did = $1 AND key_epoch = $2`

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
