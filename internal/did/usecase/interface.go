// Package usecase implements business logic orchestration for DID document
// operations.
package usecase

import (
	"context"

	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
)

// DocumentRepository defines DID document persistence operations.
type DocumentRepository interface {
	// Create inserts the first version of a document.
	Create(ctx context.Context, doc *didDomain.Document) error
	// GetLatest retrieves the current (non-superseded) version.
	GetLatest(ctx context.Context, did string) (*didDomain.Document, error)
	// GetVersion retrieves a specific version for audit, superseded or not.
	GetVersion(ctx context.Context, did string, version uint64) (*didDomain.Document, error)
	// AppendVersion supersedes version N-1 and inserts version N, returning
	// ErrStaleDocumentVersion on an optimistic-concurrency loss.
	AppendVersion(ctx context.Context, doc *didDomain.Document) error
}

// RevocationLedger is the slice of the revocation ledger the DID module
// writes to when keys are revoked.
type RevocationLedger interface {
	RevokeKey(ctx context.Context, did string, keyEpoch uint64) error
}

// DocumentUseCase defines the identity-management operations exposed to the
// service layer.
type DocumentUseCase interface {
	Create(ctx context.Context, input *didDomain.CreateDocumentInput) (*didDomain.Document, error)
	Update(ctx context.Context, input *didDomain.UpdateDocumentInput) (*didDomain.Document, error)
	Resolve(ctx context.Context, did string) (*didDomain.Document, error)
	ResolveVersion(ctx context.Context, did string, version uint64) (*didDomain.Document, error)
	RotateKey(ctx context.Context, input *didDomain.RotateKeyInput) (*didDomain.Document, error)
	RevokeKey(ctx context.Context, input *didDomain.RevokeKeyInput) (*didDomain.Document, error)
}
