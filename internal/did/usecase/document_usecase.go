package usecase

import (
	"context"
	"time"

	"github.com/publiish/bio-did-seq/internal/config"
	"github.com/publiish/bio-did-seq/internal/database"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	config    *config.Config
	docRepo   DocumentRepository
	ledger    RevocationLedger
	keyStore  *keystore.KeyStore
	txManager database.TxManager
}

// NewDocumentUseCase creates a new DocumentUseCase with the provided dependencies.
func NewDocumentUseCase(
	config *config.Config,
	docRepo DocumentRepository,
	ledger RevocationLedger,
	keyStore *keystore.KeyStore,
	txManager database.TxManager,
) DocumentUseCase {
	return &documentUseCase{
		config:    config,
		docRepo:   docRepo,
		ledger:    ledger,
		keyStore:  keyStore,
		txManager: txManager,
	}
}

// Create generates a fresh DID and publishes version 1 with a single active
// key, self-signed by the initial key.
func (u *documentUseCase) Create(
	ctx context.Context,
	input *didDomain.CreateDocumentInput,
) (*didDomain.Document, error) {
	now := time.Now().UTC()

	doc := &didDomain.Document{
		DID:        didDomain.NewDID(u.config.DIDMethod),
		Controller: input.Controller,
		Keys: []didDomain.VerificationKey{
			{
				Epoch:     1,
				Algorithm: input.Algorithm,
				PublicKey: input.PublicKey,
				Status:    didDomain.KeyStatusActive,
				AddedAt:   now,
			},
		},
		Services:  input.Services,
		Metadata:  input.Metadata,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Controller == "" {
		doc.Controller = doc.DID
	}

	if err := u.sign(doc, 1, input.Algorithm, input.PublicKey, input.SigningKey); err != nil {
		return nil, err
	}

	if err := u.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Update publishes version N+1 with the requested field changes. The proof
// must come from an active key of the base document; a stale base version
// fails with ErrStaleDocumentVersion and is safe to retry after re-resolving.
func (u *documentUseCase) Update(
	ctx context.Context,
	input *didDomain.UpdateDocumentInput,
) (*didDomain.Document, error) {
	base, err := u.loadBase(ctx, input.DID, input.BaseVersion)
	if err != nil {
		return nil, err
	}

	next := base.Clone()
	if input.Controller != "" {
		next.Controller = input.Controller
	}
	next.Services = append(next.Services, input.AddServices...)
	if len(input.RemoveServiceIDs) > 0 {
		removed := make(map[string]bool, len(input.RemoveServiceIDs))
		for _, id := range input.RemoveServiceIDs {
			removed[id] = true
		}
		var kept []didDomain.ServiceEndpoint
		for _, svc := range next.Services {
			if !removed[svc.ID] {
				kept = append(kept, svc)
			}
		}
		next.Services = kept
	}
	if input.Metadata != nil {
		next.Metadata = input.Metadata
	}

	return u.publish(ctx, base, next, input.SigningEpoch, input.SigningKey)
}

// Resolve returns the latest non-superseded document. A frozen document
// (every key revoked) fails with ErrDocumentFrozen; use ResolveVersion for
// historical audit of frozen identities.
func (u *documentUseCase) Resolve(ctx context.Context, did string) (*didDomain.Document, error) {
	doc, err := u.docRepo.GetLatest(ctx, did)
	if err != nil {
		return nil, err
	}
	if doc.Frozen() {
		return nil, didDomain.ErrDocumentFrozen
	}
	return doc, nil
}

// ResolveVersion returns a specific document version for audit, including
// superseded versions and frozen documents.
func (u *documentUseCase) ResolveVersion(
	ctx context.Context,
	did string,
	version uint64,
) (*didDomain.Document, error) {
	return u.docRepo.GetVersion(ctx, did, version)
}

// RotateKey appends a new active key at the next epoch. The previous key
// stays active until explicitly revoked so callers can re-sign their
// delegations during the overlap.
func (u *documentUseCase) RotateKey(
	ctx context.Context,
	input *didDomain.RotateKeyInput,
) (*didDomain.Document, error) {
	base, err := u.loadBase(ctx, input.DID, input.BaseVersion)
	if err != nil {
		return nil, err
	}

	next := base.Clone()
	next.Keys = append(next.Keys, didDomain.VerificationKey{
		Epoch:     base.NextEpoch(),
		Algorithm: input.NewAlgorithm,
		PublicKey: input.NewPublicKey,
		Status:    didDomain.KeyStatusActive,
		AddedAt:   time.Now().UTC(),
	})

	return u.publish(ctx, base, next, input.SigningEpoch, input.SigningKey)
}

// RevokeKey marks the key at RevokeEpoch revoked, publishes the new version
// and records the revocation in the ledger within the same transaction.
// Revoking the last active key freezes the document, which is the
// identity's terminal state.
func (u *documentUseCase) RevokeKey(
	ctx context.Context,
	input *didDomain.RevokeKeyInput,
) (*didDomain.Document, error) {
	base, err := u.loadBase(ctx, input.DID, input.BaseVersion)
	if err != nil {
		return nil, err
	}

	next := base.Clone()
	key, ok := next.KeyByEpoch(input.RevokeEpoch)
	if !ok {
		return nil, didDomain.ErrKeyNotFound
	}
	// Revoking twice is a no-op at the ledger, but the document version
	// still advances so auditors see the attempt.
	key.Status = didDomain.KeyStatusRevoked

	signingEpoch := input.SigningEpoch
	signingKey := input.SigningKey

	if err := u.prepare(base, next, signingEpoch, signingKey); err != nil {
		return nil, err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.docRepo.AppendVersion(ctx, next); err != nil {
			return err
		}
		return u.ledger.RevokeKey(ctx, next.DID, input.RevokeEpoch)
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

// loadBase resolves the document and checks it can accept a new version
// based at baseVersion.
func (u *documentUseCase) loadBase(
	ctx context.Context,
	did string,
	baseVersion uint64,
) (*didDomain.Document, error) {
	base, err := u.docRepo.GetLatest(ctx, did)
	if err != nil {
		return nil, err
	}
	if base.Frozen() {
		return nil, didDomain.ErrDocumentFrozen
	}
	// Early stale check; the version-checked supersede in AppendVersion is
	// the authoritative one under concurrency.
	if base.Version != baseVersion {
		return nil, didDomain.ErrStaleDocumentVersion
	}
	return base, nil
}

// prepare stamps and signs the next version. The proof key must be active
// on the base document.
func (u *documentUseCase) prepare(
	base *didDomain.Document,
	next *didDomain.Document,
	signingEpoch uint64,
	signingKey []byte,
) error {
	proofKey, ok := base.KeyByEpoch(signingEpoch)
	if !ok {
		return didDomain.ErrKeyNotFound
	}
	if proofKey.Status != didDomain.KeyStatusActive {
		return didDomain.ErrSignatureInvalid
	}

	next.Version = base.Version + 1
	next.UpdatedAt = time.Now().UTC()

	return u.sign(next, signingEpoch, proofKey.Algorithm, proofKey.PublicKey, signingKey)
}

// publish runs prepare and commits the new version.
func (u *documentUseCase) publish(
	ctx context.Context,
	base *didDomain.Document,
	next *didDomain.Document,
	signingEpoch uint64,
	signingKey []byte,
) (*didDomain.Document, error) {
	if err := u.prepare(base, next, signingEpoch, signingKey); err != nil {
		return nil, err
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.docRepo.AppendVersion(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

// sign computes the canonical bytes, signs them with the supplied private
// key and checks the result against the expected public key. A mismatched
// private key therefore surfaces as ErrSignatureInvalid, never as a
// published document with a bad proof.
func (u *documentUseCase) sign(
	doc *didDomain.Document,
	epoch uint64,
	alg keystore.Algorithm,
	publicKey []byte,
	signingKey []byte,
) error {
	doc.SigningEpoch = epoch

	canonical, err := doc.CanonicalBytes()
	if err != nil {
		return err
	}

	signature, err := u.keyStore.Sign(alg, signingKey, canonical)
	if err != nil {
		return didDomain.ErrSignatureInvalid
	}
	if !u.keyStore.Verify(alg, publicKey, canonical, signature) {
		return didDomain.ErrSignatureInvalid
	}

	doc.Signature = signature
	return nil
}
