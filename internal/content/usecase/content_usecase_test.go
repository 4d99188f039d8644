package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	capabilityService "github.com/publiish/bio-did-seq/internal/capability/service"
	capabilityUsecase "github.com/publiish/bio-did-seq/internal/capability/usecase"
	"github.com/publiish/bio-did-seq/internal/config"
	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
	"github.com/publiish/bio-did-seq/internal/content/store"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// In-memory collaborators so the binding layer runs against a real token
// engine and a real (memblob) store.

type memTokenRepository struct {
	tokens map[string]*capabilityDomain.Token
}

func (r *memTokenRepository) Create(ctx context.Context, token *capabilityDomain.Token) error {
	r.tokens[token.ID] = token
	return nil
}

func (r *memTokenRepository) GetByID(ctx context.Context, id string) (*capabilityDomain.Token, error) {
	token, ok := r.tokens[id]
	if !ok {
		return nil, capabilityDomain.ErrTokenNotFound
	}
	return token, nil
}

type memResolver struct {
	docs map[string]*didDomain.Document
}

func (r *memResolver) Resolve(ctx context.Context, did string) (*didDomain.Document, error) {
	doc, ok := r.docs[did]
	if !ok {
		return nil, didDomain.ErrDocumentNotFound
	}
	return doc, nil
}

type memLedger struct {
	revokedTokens map[string]time.Time
}

func (l *memLedger) RevokeToken(ctx context.Context, tokenID string) error {
	l.revokedTokens[tokenID] = time.Now().UTC()
	return nil
}

func (l *memLedger) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := l.revokedTokens[tokenID]
	return ok, nil
}

func (l *memLedger) KeyRevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	return nil, nil
}

type memBindingRepository struct {
	bindings []*contentDomain.Binding
}

func (r *memBindingRepository) Create(ctx context.Context, binding *contentDomain.Binding) error {
	r.bindings = append(r.bindings, binding)
	return nil
}

func (r *memBindingRepository) GetLatest(ctx context.Context, did, contentID string) (*contentDomain.Binding, error) {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		if r.bindings[i].DID == did && r.bindings[i].ContentID == contentID {
			return r.bindings[i], nil
		}
	}
	return nil, contentDomain.ErrBindingNotFound
}

type contentFixture struct {
	keyStore *keystore.KeyStore
	resolver *memResolver
	tokens   capabilityUsecase.TokenUseCase
	bindings *memBindingRepository
	uc       ContentUseCase
	cleanup  func()
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()

	cfg := &config.Config{
		ContentMaxBytes:      1 << 20,
		ContentCallTimeout:   5 * time.Second,
		CapabilityDefaultTTL: time.Hour,
	}

	f := &contentFixture{
		keyStore: keystore.New(),
		resolver: &memResolver{docs: make(map[string]*didDomain.Document)},
		bindings: &memBindingRepository{},
	}

	signer := capabilityService.NewSigner(f.keyStore)
	tokenRepo := &memTokenRepository{tokens: make(map[string]*capabilityDomain.Token)}
	ledger := &memLedger{revokedTokens: make(map[string]time.Time)}
	f.tokens = capabilityUsecase.NewTokenUseCase(cfg, tokenRepo, f.resolver, ledger, signer)

	bucket := memblob.OpenBucket(nil)
	f.cleanup = func() { bucket.Close() }
	f.uc = NewContentUseCase(cfg, store.NewBlobStore(bucket, cfg.ContentCallTimeout), f.bindings, f.tokens)
	return f
}

func (f *contentFixture) registerDID(t *testing.T, name string) (string, []byte) {
	t.Helper()
	pub, priv, err := f.keyStore.GenerateKeyPair(keystore.AlgorithmEd25519)
	require.NoError(t, err)

	did := "did:bio:" + name
	f.resolver.docs[did] = &didDomain.Document{
		DID:        did,
		Controller: did,
		Keys: []didDomain.VerificationKey{
			{Epoch: 1, Algorithm: keystore.AlgorithmEd25519, PublicKey: pub, Status: didDomain.KeyStatusActive},
		},
		Version: 1,
	}
	return did, priv
}

func TestContentUseCase_StoreFetchRoundTrip(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")

	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead, capabilityDomain.ActionWrite, capabilityDomain.ActionDelegate},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)
	chain := capabilityDomain.Chain{t1}

	payload := []byte("hello")
	c1, err := f.uc.AuthorizeAndStore(ctx, chain, payload)
	require.NoError(t, err)
	assert.Equal(t, contentDomain.ContentID(payload), c1)

	got, err := f.uc.AuthorizeAndFetch(ctx, chain, c1)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestContentUseCase_DelegatedReadOnly(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")
	d2, _ := f.registerDID(t, "d2")

	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.AllActions,
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)
	rootChain := capabilityDomain.Chain{t1}

	payload := []byte("restricted dataset")
	c1, err := f.uc.AuthorizeAndStore(ctx, rootChain, payload)
	require.NoError(t, err)

	// d1 delegates to d2, narrowed to read only.
	t2, err := f.tokens.Delegate(ctx, &capabilityDomain.DelegateInput{
		ParentID:     t1.ID,
		AudienceDID:  d2,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)
	delegatedChain := capabilityDomain.Chain{t1, t2}

	_, err = f.uc.AuthorizeAndStore(ctx, delegatedChain, []byte("new upload"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := f.uc.AuthorizeAndFetch(ctx, delegatedChain, c1)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestContentUseCase_Fetch_NoBinding(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")

	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)

	// Valid read grant but nothing was ever bound for this holder.
	_, err = f.uc.AuthorizeAndFetch(ctx, capabilityDomain.Chain{t1}, contentDomain.ContentID([]byte("x")))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestContentUseCase_Fetch_ContentMissingFromStore(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")

	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)

	// A binding exists but the store has no such object.
	missing := contentDomain.ContentID([]byte("vanished"))
	f.bindings.bindings = append(f.bindings.bindings, &contentDomain.Binding{
		ID: "b-1", DID: d1, ContentID: missing,
		Actions:   capabilityDomain.Actions{capabilityDomain.ActionRead},
		CreatedAt: time.Now().UTC(),
	})

	_, err = f.uc.AuthorizeAndFetch(ctx, capabilityDomain.Chain{t1}, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestContentUseCase_Store_PayloadTooLarge(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")
	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{"*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionWrite},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)

	_, err = f.uc.AuthorizeAndStore(ctx, capabilityDomain.Chain{t1}, make([]byte, (1<<20)+1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestContentUseCase_Store_ScopedToken(t *testing.T) {
	f := newContentFixture(t)
	defer f.cleanup()
	ctx := context.Background()

	d1, k1 := f.registerDID(t, "d1")

	// Exact-scope token for one specific payload: storing that payload
	// works, any other payload falls outside the scope.
	payload := []byte("the one dataset")
	t1, err := f.tokens.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
		IssuerDID:    d1,
		AudienceDID:  d1,
		Scope:        capabilityDomain.Scope{contentDomain.ContentID(payload)},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionWrite},
		SigningEpoch: 1,
		SigningKey:   k1,
	})
	require.NoError(t, err)
	chain := capabilityDomain.Chain{t1}

	_, err = f.uc.AuthorizeAndStore(ctx, chain, payload)
	require.NoError(t, err)

	_, err = f.uc.AuthorizeAndStore(ctx, chain, []byte("some other dataset"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
