// Package usecase implements the content binding layer: capability-gated
// store and fetch of content-addressed payloads.
package usecase

import (
	"context"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
)

// Store is the external content-addressed store.
type Store interface {
	// Put persists the payload and returns its content id.
	Put(ctx context.Context, data []byte) (string, error)
	// Get returns the payload stored under id.
	Get(ctx context.Context, id string) ([]byte, error)
}

// BindingRepository persists content bindings.
type BindingRepository interface {
	Create(ctx context.Context, binding *contentDomain.Binding) error
	GetLatest(ctx context.Context, did, contentID string) (*contentDomain.Binding, error)
}

// ChainVerifier is the slice of the token engine the binding layer needs.
type ChainVerifier interface {
	Verify(ctx context.Context, chain capabilityDomain.Chain, action capabilityDomain.Action, resource string) (capabilityDomain.Actions, error)
}

// ContentUseCase defines the gated content operations exposed to the
// service layer.
type ContentUseCase interface {
	// AuthorizeAndStore persists the payload if the chain grants write over
	// its content id, and records a binding for the chain's holder.
	AuthorizeAndStore(ctx context.Context, chain capabilityDomain.Chain, data []byte) (string, error)
	// AuthorizeAndFetch returns the payload if the chain grants read on
	// exactly that content id and a binding permits the holder's lineage.
	AuthorizeAndFetch(ctx context.Context, chain capabilityDomain.Chain, contentID string) ([]byte, error)
}
