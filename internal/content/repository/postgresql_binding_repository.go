// Package repository provides SQL persistence for content bindings.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
	contentUsecase "github.com/publiish/bio-did-seq/internal/content/usecase"
	"github.com/publiish/bio-did-seq/internal/database"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// PostgreSQLBindingRepository implements BindingRepository using PostgreSQL.
type PostgreSQLBindingRepository struct {
	db *sql.DB
}

// NewPostgreSQLBindingRepository creates a new PostgreSQL-backed binding
// repository.
func NewPostgreSQLBindingRepository(db *sql.DB) contentUsecase.BindingRepository {
	return &PostgreSQLBindingRepository{db: db}
}

// Create appends a binding row. Rows are never updated or deleted.
func (r *PostgreSQLBindingRepository) Create(ctx context.Context, binding *contentDomain.Binding) error {
	query := `
		INSERT INTO content_bindings (id, did, content_id, actions, token_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	actions, err := json.Marshal(binding.Actions)
	if err != nil {
		return errors.Wrap(err, "failed to marshal binding actions")
	}

	querier := database.GetTx(ctx, r.db)
	_, err = querier.ExecContext(ctx, query,
		binding.ID, binding.DID, binding.ContentID, actions, binding.TokenID, binding.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create binding")
	}
	return nil
}

// GetLatest returns the newest binding for (did, contentID); earlier rows
// are shadowed but kept for audit.
func (r *PostgreSQLBindingRepository) GetLatest(ctx context.Context, did, contentID string) (*contentDomain.Binding, error) {
	query := `
		SELECT id, did, content_id, actions, token_id, created_at
		FROM content_bindings
		WHERE did = $1 AND content_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	querier := database.GetTx(ctx, r.db)
	return scanBinding(querier.QueryRowContext(ctx, query, did, contentID))
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*contentDomain.Binding, error) {
	var binding contentDomain.Binding
	var actions []byte

	err := row.Scan(&binding.ID, &binding.DID, &binding.ContentID, &actions, &binding.TokenID, &binding.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contentDomain.ErrBindingNotFound
		}
		return nil, errors.Wrap(err, "failed to scan binding")
	}

	if err := json.Unmarshal(actions, &binding.Actions); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal binding actions")
	}
	return &binding, nil
}
