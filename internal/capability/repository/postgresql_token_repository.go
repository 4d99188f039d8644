// Package repository provides SQL persistence for capability tokens.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/publiish/bio-did-seq/internal/capability/domain"
	capabilityUsecase "github.com/publiish/bio-did-seq/internal/capability/usecase"
	"github.com/publiish/bio-did-seq/internal/database"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// PostgreSQLTokenRepository implements TokenRepository using PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL-backed token
// repository.
func NewPostgreSQLTokenRepository(db *sql.DB) capabilityUsecase.TokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts the token. The issuer, audience and parent columns are
// denormalized for lookups; the token column holds the full grant.
func (r *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query := `
		INSERT INTO capability_tokens (id, issuer, audience, parent_id, token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	body, err := json.Marshal(token)
	if err != nil {
		return errors.Wrap(err, "failed to marshal token")
	}

	querier := database.GetTx(ctx, r.db)
	_, err = querier.ExecContext(ctx, query,
		token.ID, token.Issuer, token.Audience, token.ParentID, body, token.IssuedAt, token.ExpiresAt)
	if err != nil {
		return errors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByID retrieves a token by its identifier.
func (r *PostgreSQLTokenRepository) GetByID(ctx context.Context, id string) (*domain.Token, error) {
	query := `SELECT token FROM capability_tokens WHERE id = $1`

	querier := database.GetTx(ctx, r.db)
	return scanToken(querier.QueryRowContext(ctx, query, id))
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*domain.Token, error) {
	var body []byte
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTokenNotFound
		}
		return nil, errors.Wrap(err, "failed to scan token")
	}

	var token domain.Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal token")
	}
	return &token, nil
}
