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

// MySQLTokenRepository implements TokenRepository using MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQL-backed token repository.
func NewMySQLTokenRepository(db *sql.DB) capabilityUsecase.TokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts the token.
func (r *MySQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query := `
		INSERT INTO capability_tokens (id, issuer, audience, parent_id, token, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
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
func (r *MySQLTokenRepository) GetByID(ctx context.Context, id string) (*domain.Token, error) {
	query := `SELECT token FROM capability_tokens WHERE id = ?`

	querier := database.GetTx(ctx, r.db)
	return scanToken(querier.QueryRowContext(ctx, query, id))
}
