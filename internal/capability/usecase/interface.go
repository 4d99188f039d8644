// Package usecase implements the capability token engine: issuance,
// attenuated delegation, chain verification and revocation.
package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
)

// TokenRepository persists issued tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *capabilityDomain.Token) error
	GetByID(ctx context.Context, id string) (*capabilityDomain.Token, error)
}

// DIDResolver is the slice of the DID module the engine needs: a live
// resolution of the issuer's current document at verification time.
type DIDResolver interface {
	Resolve(ctx context.Context, did string) (*didDomain.Document, error)
}

// RevocationLedger is the slice of the revocation ledger the engine
// consults and writes to.
type RevocationLedger interface {
	RevokeToken(ctx context.Context, tokenID string) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	KeyRevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error)
}

// TokenUseCase defines the authorization-management operations exposed to
// the service layer.
type TokenUseCase interface {
	// IssueRoot mints a self-signed root token.
	IssueRoot(ctx context.Context, input *capabilityDomain.IssueRootInput) (*capabilityDomain.Token, error)
	// Delegate mints a child token attenuating the parent's grant.
	Delegate(ctx context.Context, input *capabilityDomain.DelegateInput) (*capabilityDomain.Token, error)
	// Verify walks the chain root to leaf and returns the effective action
	// set, or the first violation encountered.
	Verify(ctx context.Context, chain capabilityDomain.Chain, action capabilityDomain.Action, resource string) (capabilityDomain.Actions, error)
	// Revoke records the token id in the ledger.
	Revoke(ctx context.Context, tokenID string) error
	// GetChain reassembles the stored delegation chain ending at the given
	// token, root first.
	GetChain(ctx context.Context, tokenID string) (capabilityDomain.Chain, error)
}
