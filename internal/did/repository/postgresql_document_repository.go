// Package repository implements DID document persistence. Every document
// version is a row keyed (did, version); the latest version is the single
// non-superseded row. Optimistic concurrency happens in AppendVersion: the
// version-checked supersede UPDATE decides races between concurrent writers.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/database"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
)

// PostgreSQLDocumentRepository implements DID document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts the first version of a document.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *didDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal did document")
	}

	query := `INSERT INTO did_documents (did, version, superseded, document, created_at, updated_at)
			  VALUES ($1, $2, FALSE, $3, $4, $5)`

	_, err = querier.ExecContext(ctx, query, doc.DID, doc.Version, body, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create did document")
	}
	return nil
}

// GetLatest retrieves the current (non-superseded) version of a document.
// Returns ErrDocumentNotFound if the DID is unknown.
func (p *PostgreSQLDocumentRepository) GetLatest(ctx context.Context, did string) (*didDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT document, superseded FROM did_documents
			  WHERE did = $1 AND superseded = FALSE`

	return scanDocument(querier.QueryRowContext(ctx, query, did), didDomain.ErrDocumentNotFound)
}

// GetVersion retrieves a specific document version, superseded or not.
// Returns ErrVersionNotFound if the version does not exist.
func (p *PostgreSQLDocumentRepository) GetVersion(ctx context.Context, did string, version uint64) (*didDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT document, superseded FROM did_documents
			  WHERE did = $1 AND version = $2`

	return scanDocument(querier.QueryRowContext(ctx, query, did, version), didDomain.ErrVersionNotFound)
}

// AppendVersion publishes version doc.Version by superseding doc.Version-1
// and inserting the new row. Returns ErrStaleDocumentVersion when the base
// version is no longer the latest (a concurrent writer won the race).
// Callers must run this inside a transaction.
func (p *PostgreSQLDocumentRepository) AppendVersion(ctx context.Context, doc *didDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	supersede := `UPDATE did_documents SET superseded = TRUE
				  WHERE did = $1 AND version = $2 AND superseded = FALSE`

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
			   VALUES ($1, $2, FALSE, $3, $4, $5)`

	_, err = querier.ExecContext(ctx, insert, doc.DID, doc.Version, body, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert did document version")
	}
	return nil
}

// rowScanner abstracts *sql.Row for document scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument decodes a document row, translating sql.ErrNoRows to notFound.
func scanDocument(row rowScanner, notFound error) (*didDomain.Document, error) {
	var body []byte
	var superseded bool

	if err := row.Scan(&body, &superseded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(err, "failed to get did document")
	}

	var doc didDomain.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal did document")
	}
	doc.Superseded = superseded

	return &doc, nil
}
