package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/database"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
)

// MySQLDocumentRepository implements DID document persistence for MySQL.
// Identical semantics to the PostgreSQL repository with ? placeholders.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a new MySQL document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

// Create inserts the first version of a document.
func (m *MySQLDocumentRepository) Create(ctx context.Context, doc *didDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal did document")
	}

	query := `INSERT INTO did_documents (did, version, superseded, document, created_at, updated_at)
			  VALUES (?, ?, FALSE, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, doc.DID, doc.Version, body, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create did document")
	}
	return nil
}

// GetLatest retrieves the current (non-superseded) version of a document.
func (m *MySQLDocumentRepository) GetLatest(ctx context.Context, did string) (*didDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT document, superseded FROM did_documents
			  WHERE did = ? AND superseded = FALSE`

	return scanDocument(querier.QueryRowContext(ctx, query, did), didDomain.ErrDocumentNotFound)
}

// GetVersion retrieves a specific document version, superseded or not.
func (m *MySQLDocumentRepository) GetVersion(ctx context.Context, did string, version uint64) (*didDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT document, superseded FROM did_documents
			  WHERE did = ? AND version = ?`

	return scanDocument(querier.QueryRowContext(ctx, query, did, version), didDomain.ErrVersionNotFound)
}

// AppendVersion publishes version doc.Version by superseding doc.Version-1
// and inserting the new row. Returns ErrStaleDocumentVersion when the base
// version is no longer the latest. Callers must run this inside a transaction.
func (m *MySQLDocumentRepository) AppendVersion(ctx context.Context, doc *didDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	supersede := `UPDATE did_documents SET superseded = TRUE
				  WHERE did = ? AND version = ? AND superseded = FALSE`

	result, err := querier.ExecContext(ctx, supersede, doc.DID, doc.Version-1)
	if err != nil {
		return apperrors.Wrap(err, "failed to supersede did document version")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read supersede result")
	}
	if affected == 0 {
		return didDomain.ErrStaleDocumentVersion
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal did document")
	}

	insert := `INSERT INTO did_documents (did, version, superseded, document, created_at, updated_at)
			   VALUES (?, ?, FALSE, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, insert, doc.DID, doc.Version, body, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert did document version")
	}
	return nil
}
