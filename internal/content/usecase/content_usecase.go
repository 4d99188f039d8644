package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/config"
	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// contentUseCase implements ContentUseCase.
type contentUseCase struct {
	config      *config.Config
	store       Store
	bindingRepo BindingRepository
	verifier    ChainVerifier
}

// NewContentUseCase creates a new ContentUseCase with the provided
// dependencies.
func NewContentUseCase(
	config *config.Config,
	store Store,
	bindingRepo BindingRepository,
	verifier ChainVerifier,
) ContentUseCase {
	return &contentUseCase{
		config:      config,
		store:       store,
		bindingRepo: bindingRepo,
		verifier:    verifier,
	}
}

// AuthorizeAndStore verifies the chain grants write over the payload's
// content id, persists the bytes and appends a binding for the chain's
// leaf audience. The id is content-derived, so authorization is checked
// before any store call; a failed store commits nothing.
func (u *contentUseCase) AuthorizeAndStore(
	ctx context.Context,
	chain capabilityDomain.Chain,
	data []byte,
) (string, error) {
	if u.config.ContentMaxBytes > 0 && int64(len(data)) > u.config.ContentMaxBytes {
		return "", errors.Wrap(errors.ErrInvalidInput, "payload exceeds the size limit")
	}

	leaf := chain.Leaf()
	if leaf == nil {
		return "", capabilityDomain.ErrChainBroken
	}

	contentID := contentDomain.ContentID(data)
	effective, err := u.verifier.Verify(ctx, chain, capabilityDomain.ActionWrite, contentID)
	if err != nil {
		return "", err
	}

	if _, err := u.store.Put(ctx, data); err != nil {
		return "", err
	}

	binding := &contentDomain.Binding{
		ID:        uuid.Must(uuid.NewV7()).String(),
		DID:       leaf.Audience,
		ContentID: contentID,
		Actions:   effective,
		TokenID:   leaf.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.bindingRepo.Create(ctx, binding); err != nil {
		return "", err
	}

	return contentID, nil
}

// AuthorizeAndFetch verifies the chain grants read on the content id, then
// requires a binding permitting someone in the holder's lineage: the leaf
// audience itself, or an ancestor audience the grant was delegated from.
func (u *contentUseCase) AuthorizeAndFetch(
	ctx context.Context,
	chain capabilityDomain.Chain,
	contentID string,
) ([]byte, error) {
	if _, err := u.verifier.Verify(ctx, chain, capabilityDomain.ActionRead, contentID); err != nil {
		return nil, err
	}

	permitted := false
	for i := len(chain) - 1; i >= 0; i-- {
		binding, err := u.bindingRepo.GetLatest(ctx, chain[i].Audience, contentID)
		if errors.Is(err, contentDomain.ErrBindingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if binding.Actions.Contains(capabilityDomain.ActionRead) {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, contentDomain.ErrNoBindingPermits
	}

	return u.store.Get(ctx, contentID)
}
