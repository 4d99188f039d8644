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

// MySQLBindingRepository implements BindingRepository using MySQL.
type MySQLBindingRepository struct {
	db *sql.DB
}

// NewMySQLBindingRepository creates a new MySQL-backed binding repository.
func NewMySQLBindingRepository(db *sql.DB) contentUsecase.BindingRepository {
	return &MySQLBindingRepository{db: db}
}

// Create appends a binding row.
func (r *MySQLBindingRepository) Create(ctx context.Context, binding *contentDomain.Binding) error {
	query := `
		INSERT INTO content_bindings (id, did, content_id, actions, token_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
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

// GetLatest returns the newest binding for (did, contentID).
func (r *MySQLBindingRepository) GetLatest(ctx context.Context, did, contentID string) (*contentDomain.Binding, error) {
	query := `
		SELECT id, did, content_id, actions, token_id, created_at
		FROM content_bindings
		WHERE did = ? AND content_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	querier := database.GetTx(ctx, r.db)
	return scanBinding(querier.QueryRowContext(ctx, query, did, contentID))
}
