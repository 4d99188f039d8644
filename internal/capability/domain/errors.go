package domain

import "github.com/publiish/bio-did-seq/internal/errors"

// Domain errors for capability tokens.
var (
	// ErrTokenNotFound indicates the token id is unknown.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrChainBroken indicates a structural defect: empty chain, a link
	// whose issuer is not the previous link's audience, or a parent pointer
	// that does not match the preceding token.
	ErrChainBroken = errors.Wrap(errors.ErrUnauthorized, "broken delegation chain")

	// ErrSignatureInvalid indicates a link's signature does not verify
	// against the issuer's key, or the token id does not match its content.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrNotDelegable indicates the parent token does not grant the
	// delegate action to its audience.
	ErrNotDelegable = errors.Wrap(errors.ErrForbidden, "parent token does not grant delegation")
)
