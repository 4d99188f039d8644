package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/capability/service"
	"github.com/publiish/bio-did-seq/internal/config"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// maxChainDepth bounds chain reassembly so a corrupted parent pointer
// cannot loop forever.
const maxChainDepth = 64

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	config    *config.Config
	tokenRepo TokenRepository
	resolver  DIDResolver
	ledger    RevocationLedger
	signer    *service.Signer
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	tokenRepo TokenRepository,
	resolver DIDResolver,
	ledger RevocationLedger,
	signer *service.Signer,
) TokenUseCase {
	return &tokenUseCase{
		config:    config,
		tokenRepo: tokenRepo,
		resolver:  resolver,
		ledger:    ledger,
		signer:    signer,
	}
}

// IssueRoot mints a self-signed root token. The signing key must be the
// private half of an active key on the issuer's resolved document.
func (u *tokenUseCase) IssueRoot(
	ctx context.Context,
	input *capabilityDomain.IssueRootInput,
) (*capabilityDomain.Token, error) {
	if len(input.Scope) == 0 || len(input.Actions) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "scope and actions are required")
	}

	key, err := u.activeKey(ctx, input.IssuerDID, input.SigningEpoch)
	if err != nil {
		return nil, err
	}

	token := &capabilityDomain.Token{
		Issuer:    input.IssuerDID,
		Audience:  input.AudienceDID,
		Scope:     input.Scope,
		Actions:   input.Actions,
		ExpiresAt: u.expiry(input.ExpiresAt),
		IssuedAt:  time.Now().UTC(),
		KeyEpoch:  input.SigningEpoch,
		Algorithm: key.Algorithm,
	}

	if err := u.signer.Sign(token, key.PublicKey, input.SigningKey); err != nil {
		return nil, err
	}

	if err := u.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Delegate mints a child token. The delegator is the parent's audience;
// the child's scope and actions must attenuate the parent's, and no
// ancestor may have expired.
func (u *tokenUseCase) Delegate(
	ctx context.Context,
	input *capabilityDomain.DelegateInput,
) (*capabilityDomain.Token, error) {
	ancestry, err := u.GetChain(ctx, input.ParentID)
	if err != nil {
		return nil, err
	}
	parent := ancestry.Leaf()

	now := time.Now().UTC()
	for _, ancestor := range ancestry {
		if ancestor.Expired(now) {
			return nil, errors.Wrap(errors.ErrTokenExpired, "ancestor token expired")
		}
	}

	if !parent.Actions.Contains(capabilityDomain.ActionDelegate) {
		return nil, capabilityDomain.ErrNotDelegable
	}
	if !input.Scope.SubsetOf(parent.Scope) {
		return nil, errors.Wrap(errors.ErrScopeExpansion, "scope is not a subset of the parent scope")
	}
	if !input.Actions.SubsetOf(parent.Actions) {
		return nil, errors.Wrap(errors.ErrScopeExpansion, "actions are not a subset of the parent actions")
	}

	key, err := u.activeKey(ctx, parent.Audience, input.SigningEpoch)
	if err != nil {
		return nil, err
	}

	token := &capabilityDomain.Token{
		Issuer:    parent.Audience,
		Audience:  input.AudienceDID,
		Scope:     input.Scope,
		Actions:   input.Actions,
		ExpiresAt: u.expiry(input.ExpiresAt),
		IssuedAt:  now,
		KeyEpoch:  input.SigningEpoch,
		Algorithm: key.Algorithm,
		ParentID:  parent.ID,
	}

	if err := u.signer.Sign(token, key.PublicKey, input.SigningKey); err != nil {
		return nil, err
	}

	if err := u.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Verify walks the chain root to leaf. Each link is checked for structure,
// attenuation, expiry, a live signature against the issuer's re-resolved
// document and absence from the revocation ledger. The first violation is
// returned; on success the leaf's action set comes back, which must grant
// the requested action on the requested resource.
func (u *tokenUseCase) Verify(
	ctx context.Context,
	chain capabilityDomain.Chain,
	action capabilityDomain.Action,
	resource string,
) (capabilityDomain.Actions, error) {
	if len(chain) == 0 {
		return nil, capabilityDomain.ErrChainBroken
	}

	now := time.Now().UTC()
	var effectiveScope capabilityDomain.Scope
	var effectiveActions capabilityDomain.Actions
	var earliestExpiry *time.Time

	for i, token := range chain {
		if i == 0 {
			if token.ParentID != "" {
				return nil, capabilityDomain.ErrChainBroken
			}
		} else {
			prev := chain[i-1]
			if token.ParentID != prev.ID || token.Issuer != prev.Audience {
				return nil, capabilityDomain.ErrChainBroken
			}
			if !token.Scope.SubsetOf(effectiveScope) {
				return nil, errors.Wrap(errors.ErrScopeExpansion, "link widens the resource scope")
			}
			if !token.Actions.SubsetOf(effectiveActions) {
				return nil, errors.Wrap(errors.ErrScopeExpansion, "link widens the action set")
			}
		}
		effectiveScope = token.Scope
		effectiveActions = token.Actions

		// The earliest ancestor expiry caps every descendant.
		if token.ExpiresAt != nil && (earliestExpiry == nil || token.ExpiresAt.Before(*earliestExpiry)) {
			earliestExpiry = token.ExpiresAt
		}
		if earliestExpiry != nil && now.After(*earliestExpiry) {
			return nil, errors.Wrap(errors.ErrTokenExpired, "chain expired")
		}

		if err := u.verifyLink(ctx, token); err != nil {
			return nil, err
		}
	}

	if !effectiveActions.Contains(action) || !effectiveScope.Covers(resource) {
		return nil, errors.Wrap(errors.ErrForbidden, "chain does not grant the requested access")
	}
	return effectiveActions, nil
}

// verifyLink checks one link's signature and revocation state.
func (u *tokenUseCase) verifyLink(ctx context.Context, token *capabilityDomain.Token) error {
	doc, err := u.resolver.Resolve(ctx, token.Issuer)
	if err != nil {
		return err
	}

	key, ok := doc.KeyByEpoch(token.KeyEpoch)
	if !ok {
		return capabilityDomain.ErrSignatureInvalid
	}
	if !u.signer.Verify(token, key.PublicKey) {
		return capabilityDomain.ErrSignatureInvalid
	}

	revoked, err := u.ledger.IsTokenRevoked(ctx, token.ID)
	if err != nil {
		return err
	}
	if revoked {
		return errors.Wrap(errors.ErrTokenRevoked, "token is revoked")
	}

	// Key revocation invalidates the link retroactively only when the
	// policy says so; otherwise only tokens issued after the revocation
	// are rejected.
	revokedAt, err := u.ledger.KeyRevokedAt(ctx, token.Issuer, token.KeyEpoch)
	if err != nil {
		return err
	}
	if revokedAt != nil && (u.config.RevocationRetroactive || revokedAt.Before(token.IssuedAt)) {
		return errors.Wrap(errors.ErrKeyRevoked, "issuer key is revoked")
	}
	return nil
}

// Revoke records the token id in the ledger. Revoking an already revoked
// token succeeds; revoking an unknown id fails NotFound.
func (u *tokenUseCase) Revoke(ctx context.Context, tokenID string) error {
	if _, err := u.tokenRepo.GetByID(ctx, tokenID); err != nil {
		return err
	}
	return u.ledger.RevokeToken(ctx, tokenID)
}

// GetChain reassembles the stored chain ending at tokenID, root first.
func (u *tokenUseCase) GetChain(ctx context.Context, tokenID string) (capabilityDomain.Chain, error) {
	var reversed capabilityDomain.Chain

	id := tokenID
	for depth := 0; id != ""; depth++ {
		if depth >= maxChainDepth {
			return nil, capabilityDomain.ErrChainBroken
		}
		token, err := u.tokenRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		reversed = append(reversed, token)
		id = token.ParentID
	}

	chain := make(capabilityDomain.Chain, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		chain = append(chain, reversed[i])
	}
	return chain, nil
}

// activeKey resolves the DID and returns its key at epoch, requiring it to
// be active.
func (u *tokenUseCase) activeKey(ctx context.Context, did string, epoch uint64) (*didDomain.VerificationKey, error) {
	doc, err := u.resolver.Resolve(ctx, did)
	if err != nil {
		return nil, err
	}
	key, ok := doc.KeyByEpoch(epoch)
	if !ok || key.Status != didDomain.KeyStatusActive {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signing key is not active")
	}
	return key, nil
}

// expiry applies the configured default TTL when the caller supplied none.
// A zero TTL keeps such tokens expiry-free.
func (u *tokenUseCase) expiry(requested *time.Time) *time.Time {
	if requested != nil {
		return requested
	}
	if u.config.CapabilityDefaultTTL <= 0 {
		return nil
	}
	expiresAt := time.Now().UTC().Add(u.config.CapabilityDefaultTTL)
	return &expiresAt
}
