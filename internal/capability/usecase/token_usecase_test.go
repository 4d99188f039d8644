package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/capability/service"
	"github.com/publiish/bio-did-seq/internal/config"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// fakeTokenRepository is a map-backed TokenRepository.
type fakeTokenRepository struct {
	tokens map[string]*capabilityDomain.Token
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{tokens: make(map[string]*capabilityDomain.Token)}
}

func (r *fakeTokenRepository) Create(ctx context.Context, token *capabilityDomain.Token) error {
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepository) GetByID(ctx context.Context, id string) (*capabilityDomain.Token, error) {
	token, ok := r.tokens[id]
	if !ok {
		return nil, capabilityDomain.ErrTokenNotFound
	}
	return token, nil
}

// fakeResolver is a map-backed DIDResolver.
type fakeResolver struct {
	docs map[string]*didDomain.Document
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{docs: make(map[string]*didDomain.Document)}
}

func (r *fakeResolver) Resolve(ctx context.Context, did string) (*didDomain.Document, error) {
	doc, ok := r.docs[did]
	if !ok {
		return nil, didDomain.ErrDocumentNotFound
	}
	if doc.Frozen() {
		return nil, didDomain.ErrDocumentFrozen
	}
	return doc, nil
}

// fakeLedger is a map-backed RevocationLedger.
type fakeLedger struct {
	revokedTokens map[string]time.Time
	revokedKeys   map[string]time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		revokedTokens: make(map[string]time.Time),
		revokedKeys:   make(map[string]time.Time),
	}
}

func keyID(did string, epoch uint64) string {
	return fmt.Sprintf("%s#%d", did, epoch)
}

func (l *fakeLedger) RevokeToken(ctx context.Context, tokenID string) error {
	if _, ok := l.revokedTokens[tokenID]; !ok {
		l.revokedTokens[tokenID] = time.Now().UTC()
	}
	return nil
}

func (l *fakeLedger) revokeKeyAt(did string, epoch uint64, at time.Time) {
	l.revokedKeys[keyID(did, epoch)] = at
}

func (l *fakeLedger) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := l.revokedTokens[tokenID]
	return ok, nil
}

func (l *fakeLedger) KeyRevokedAt(ctx context.Context, did string, keyEpoch uint64) (*time.Time, error) {
	at, ok := l.revokedKeys[keyID(did, keyEpoch)]
	if !ok {
		return nil, nil
	}
	return &at, nil
}

// engineFixture wires a token engine over in-memory collaborators with a
// real signer.
type engineFixture struct {
	config   *config.Config
	keyStore *keystore.KeyStore
	signer   *service.Signer
	repo     *fakeTokenRepository
	resolver *fakeResolver
	ledger   *fakeLedger
	uc       TokenUseCase
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		config:   &config.Config{CapabilityDefaultTTL: time.Hour},
		keyStore: keystore.New(),
		repo:     newFakeTokenRepository(),
		resolver: newFakeResolver(),
		ledger:   newFakeLedger(),
	}
	f.signer = service.NewSigner(f.keyStore)
	f.uc = NewTokenUseCase(f.config, f.repo, f.resolver, f.ledger, f.signer)
	return f
}

// registerDID creates a single-key document in the fake resolver and
// returns the DID with its private key.
func (f *engineFixture) registerDID(t *testing.T, name string) (string, []byte) {
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

func (f *engineFixture) issueRoot(t *testing.T, issuer, audience string, issuerKey []byte, scope capabilityDomain.Scope, actions capabilityDomain.Actions) *capabilityDomain.Token {
	t.Helper()
	token, err := f.uc.IssueRoot(context.Background(), &capabilityDomain.IssueRootInput{
		IssuerDID:    issuer,
		AudienceDID:  audience,
		Scope:        scope,
		Actions:      actions,
		SigningEpoch: 1,
		SigningKey:   issuerKey,
	})
	require.NoError(t, err)
	return token
}

func TestTokenUseCase_IssueRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		audience, _ := f.registerDID(t, "audience")

		token := f.issueRoot(t, issuer, audience, issuerKey,
			capabilityDomain.Scope{"*"}, capabilityDomain.AllActions)

		assert.Len(t, token.ID, 64)
		assert.Empty(t, token.ParentID)
		require.NotNil(t, token.ExpiresAt, "default TTL applies when no expiry requested")
		assert.NotNil(t, f.repo.tokens[token.ID])
	})

	t.Run("Error_WrongSigningKey", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, _ := f.registerDID(t, "issuer")
		_, strangerKey := f.registerDID(t, "stranger")

		_, err := f.uc.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
			IssuerDID:    issuer,
			AudienceDID:  issuer,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   strangerKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_RevokedSigningKey", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		f.resolver.docs[issuer].Keys = append(f.resolver.docs[issuer].Keys, didDomain.VerificationKey{
			Epoch: 2, Algorithm: keystore.AlgorithmEd25519, Status: didDomain.KeyStatusActive,
		})
		f.resolver.docs[issuer].Keys[0].Status = didDomain.KeyStatusRevoked

		_, err := f.uc.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
			IssuerDID:    issuer,
			AudienceDID:  issuer,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   issuerKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_EmptyGrant", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")

		_, err := f.uc.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
			IssuerDID:    issuer,
			SigningEpoch: 1,
			SigningKey:   issuerKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestTokenUseCase_Delegate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Narrowing", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, holderKey := f.registerDID(t, "holder")
		grantee, _ := f.registerDID(t, "grantee")

		root := f.issueRoot(t, issuer, holder, issuerKey,
			capabilityDomain.Scope{"datasets/*"}, capabilityDomain.AllActions)

		child, err := f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
			ParentID:     root.ID,
			AudienceDID:  grantee,
			Scope:        capabilityDomain.Scope{"datasets/plankton/*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   holderKey,
		})
		require.NoError(t, err)
		assert.Equal(t, holder, child.Issuer)
		assert.Equal(t, grantee, child.Audience)
		assert.Equal(t, root.ID, child.ParentID)
	})

	t.Run("Error_ScopeExpansion", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, holderKey := f.registerDID(t, "holder")

		root := f.issueRoot(t, issuer, holder, issuerKey,
			capabilityDomain.Scope{"datasets/plankton/*"}, capabilityDomain.AllActions)

		_, err := f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
			ParentID:     root.ID,
			AudienceDID:  holder,
			Scope:        capabilityDomain.Scope{"datasets/*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   holderKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrScopeExpansion)
	})

	t.Run("Error_ActionExpansion", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, holderKey := f.registerDID(t, "holder")

		root := f.issueRoot(t, issuer, holder, issuerKey,
			capabilityDomain.Scope{"*"},
			capabilityDomain.Actions{capabilityDomain.ActionRead, capabilityDomain.ActionDelegate})

		_, err := f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
			ParentID:     root.ID,
			AudienceDID:  holder,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionWrite},
			SigningEpoch: 1,
			SigningKey:   holderKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrScopeExpansion)
	})

	t.Run("Error_ParentNotDelegable", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, holderKey := f.registerDID(t, "holder")

		root := f.issueRoot(t, issuer, holder, issuerKey,
			capabilityDomain.Scope{"*"}, capabilityDomain.Actions{capabilityDomain.ActionRead})

		_, err := f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
			ParentID:     root.ID,
			AudienceDID:  holder,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   holderKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_ExpiredAncestor", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, holderKey := f.registerDID(t, "holder")

		past := time.Now().UTC().Add(-time.Minute)
		root, err := f.uc.IssueRoot(ctx, &capabilityDomain.IssueRootInput{
			IssuerDID:    issuer,
			AudienceDID:  holder,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.AllActions,
			ExpiresAt:    &past,
			SigningEpoch: 1,
			SigningKey:   issuerKey,
		})
		require.NoError(t, err)

		_, err = f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
			ParentID:     root.ID,
			AudienceDID:  holder,
			Scope:        capabilityDomain.Scope{"*"},
			Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
			SigningEpoch: 1,
			SigningKey:   holderKey,
		})
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

// delegationChain builds issuer -> holder -> grantee with the leaf narrowed
// to read on the plankton prefix.
func delegationChain(t *testing.T, f *engineFixture) (capabilityDomain.Chain, string) {
	t.Helper()
	ctx := context.Background()

	issuer, issuerKey := f.registerDID(t, "issuer")
	holder, holderKey := f.registerDID(t, "holder")
	grantee, _ := f.registerDID(t, "grantee")

	root := f.issueRoot(t, issuer, holder, issuerKey,
		capabilityDomain.Scope{"datasets/*"}, capabilityDomain.AllActions)

	leaf, err := f.uc.Delegate(ctx, &capabilityDomain.DelegateInput{
		ParentID:     root.ID,
		AudienceDID:  grantee,
		Scope:        capabilityDomain.Scope{"datasets/plankton/*"},
		Actions:      capabilityDomain.Actions{capabilityDomain.ActionRead},
		SigningEpoch: 1,
		SigningKey:   holderKey,
	})
	require.NoError(t, err)

	return capabilityDomain.Chain{root, leaf}, issuer
}

func TestTokenUseCase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EffectiveActions", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		actions, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		require.NoError(t, err)
		assert.Equal(t, capabilityDomain.Actions{capabilityDomain.ActionRead}, actions)
	})

	t.Run("Error_Forbidden_ActionNotGranted", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionWrite, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_Forbidden_ResourceOutOfScope", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/coral/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_BrokenChain", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		// Leaf presented without its root.
		_, err := f.uc.Verify(ctx, capabilityDomain.Chain{chain.Leaf()}, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		_, err = f.uc.Verify(ctx, capabilityDomain.Chain{}, capabilityDomain.ActionRead, "x")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_TamperedLink", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		// Widen the leaf to write, which the root still covers, so the
		// attenuation check passes and the signature check is what fails.
		tampered := *chain.Leaf()
		tampered.Actions = capabilityDomain.Actions{capabilityDomain.ActionRead, capabilityDomain.ActionWrite}
		tampered.ID = tampered.ComputeID()
		forged := capabilityDomain.Chain{chain[0], &tampered}

		_, err := f.uc.Verify(ctx, forged, capabilityDomain.ActionWrite, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_RevokedAncestorFailsDescendants", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, _ := delegationChain(t, f)

		require.NoError(t, f.uc.Revoke(ctx, chain[0].ID))

		// No stale-valid window: the very next verify sees the revocation,
		// and the untouched leaf falls with its ancestor.
		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("KeyRevocation_NonRetroactive", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, issuer := delegationChain(t, f)

		// Key revoked after issuance: tokens signed while it was active
		// survive under the default policy.
		f.ledger.revokeKeyAt(issuer, 1, time.Now().UTC())

		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		assert.NoError(t, err)
	})

	t.Run("KeyRevocation_BeforeIssuance", func(t *testing.T) {
		f := newEngineFixture(t)
		chain, issuer := delegationChain(t, f)

		f.ledger.revokeKeyAt(issuer, 1, chain[0].IssuedAt.Add(-time.Hour))

		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrKeyRevoked)
	})

	t.Run("KeyRevocation_Retroactive", func(t *testing.T) {
		f := newEngineFixture(t)
		f.config.RevocationRetroactive = true
		chain, issuer := delegationChain(t, f)

		f.ledger.revokeKeyAt(issuer, 1, time.Now().UTC())

		_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
		assert.ErrorIs(t, err, apperrors.ErrKeyRevoked)
	})

	t.Run("Error_ExpiredRootCapsLeaf", func(t *testing.T) {
		f := newEngineFixture(t)
		issuer, issuerKey := f.registerDID(t, "issuer")
		holder, _ := f.registerDID(t, "holder")

		// Signed directly so an already-expired root can exist.
		past := time.Now().UTC().Add(-time.Minute)
		root := &capabilityDomain.Token{
			Issuer:    issuer,
			Audience:  holder,
			Scope:     capabilityDomain.Scope{"*"},
			Actions:   capabilityDomain.AllActions,
			ExpiresAt: &past,
			IssuedAt:  past.Add(-time.Hour),
			KeyEpoch:  1,
			Algorithm: keystore.AlgorithmEd25519,
		}
		pub := f.resolver.docs[issuer].Keys[0].PublicKey
		require.NoError(t, f.signer.Sign(root, pub, issuerKey))

		_, err := f.uc.Verify(ctx, capabilityDomain.Chain{root}, capabilityDomain.ActionRead, "cid-1")
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestTokenUseCase_Revoke_UnknownToken(t *testing.T) {
	f := newEngineFixture(t)

	err := f.uc.Revoke(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTokenUseCase_GetChain(t *testing.T) {
	f := newEngineFixture(t)
	chain, _ := delegationChain(t, f)

	got, err := f.uc.GetChain(context.Background(), chain.Leaf().ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, chain[0].ID, got[0].ID)
	assert.Equal(t, chain[1].ID, got[1].ID)
}

func TestTokenUseCase_ConcurrentVerify(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newEngineFixture(t)
	chain, _ := delegationChain(t, f)
	ctx := context.Background()

	// Verification is read-only and parallelizable; no lock protects the
	// fixture, so the race detector doubles as the assertion here.
	var group errgroup.Group
	for i := 0; i < 16; i++ {
		group.Go(func() error {
			_, err := f.uc.Verify(ctx, chain, capabilityDomain.ActionRead, "datasets/plankton/cid-1")
			return err
		})
	}
	require.NoError(t, group.Wait())
}
