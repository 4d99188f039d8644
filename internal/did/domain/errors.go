package domain

import (
	"github.com/publiish/bio-did-seq/internal/errors"
)

// DID document errors.
var (
	// ErrDocumentNotFound indicates no document exists for the DID.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "did document not found")

	// ErrVersionNotFound indicates the requested document version does not exist.
	ErrVersionNotFound = errors.Wrap(errors.ErrNotFound, "did document version not found")

	// ErrStaleDocumentVersion indicates the caller's base version is no longer
	// the latest; re-resolve and retry.
	ErrStaleDocumentVersion = errors.Wrap(errors.ErrStaleVersion, "did document base version is stale")

	// ErrDocumentFrozen indicates every verification key is revoked.
	ErrDocumentFrozen = errors.Wrap(errors.ErrAllKeysRevoked, "did document is frozen")

	// ErrKeyNotFound indicates the referenced key epoch does not exist.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "verification key not found")

	// ErrSignatureInvalid indicates a proof did not verify against an active key.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "signature does not verify against an active key")
)
