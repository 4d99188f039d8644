// Package errors provides the core error taxonomy shared by all domain
// modules. Use cases return these kinds (usually wrapped with context) and
// handlers map them to HTTP status codes. Collaborator errors never cross
// the module boundary directly; repositories and stores translate them here.
package errors

import (
	"errors"
	"fmt"
)

// Core error kinds.
var (
	// ErrUnauthorized indicates a signature or key mismatch: the presented
	// proof does not verify against an active key of the relevant DID.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrScopeExpansion indicates a delegation attempted to broaden the
	// parent token's resource scope or action set.
	ErrScopeExpansion = errors.New("scope expansion")

	// ErrTokenExpired indicates a token, or an ancestor in its chain, has
	// passed its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates the token identifier appears in the
	// revocation ledger.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrKeyRevoked indicates the signing key epoch appears in the
	// revocation ledger.
	ErrKeyRevoked = errors.New("key revoked")

	// ErrStaleVersion indicates an optimistic-concurrency loss on a DID
	// document update. Callers are expected to re-resolve and retry.
	ErrStaleVersion = errors.New("stale version")

	// ErrNotFound indicates an unknown DID, token, binding or content id.
	ErrNotFound = errors.New("not found")

	// ErrAllKeysRevoked indicates every verification key of a DID document
	// is revoked; the document is frozen and cannot be updated further.
	ErrAllKeysRevoked = errors.New("all keys revoked")

	// ErrForbidden indicates a valid capability chain that does not grant
	// the requested action on the requested resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable indicates the external content store could not
	// serve the call. Surfaced as-is; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTimeout indicates a caller-supplied deadline expired during an
	// external call. No partial state was committed.
	ErrTimeout = errors.New("timeout")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
