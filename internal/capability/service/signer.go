// Package service provides token signing and verification on top of the
// algorithm registry.
package service

import (
	"github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// Signer signs capability tokens and checks their signatures. It is
// stateless; key material is supplied per call and never retained.
type Signer struct {
	keyStore *keystore.KeyStore
}

// NewSigner creates a new Signer over the given key store.
func NewSigner(keyStore *keystore.KeyStore) *Signer {
	return &Signer{keyStore: keyStore}
}

// Sign computes the token id, signs the canonical bytes with the issuer's
// private key and checks the result against the issuer's public key. On a
// mismatched key pair it fails before the token ever carries a signature.
func (s *Signer) Sign(token *domain.Token, publicKey, privateKey []byte) error {
	canonical := token.CanonicalBytes()

	signature, err := s.keyStore.Sign(token.Algorithm, privateKey, canonical)
	if err != nil {
		return domain.ErrSignatureInvalid
	}
	if !s.keyStore.Verify(token.Algorithm, publicKey, canonical, signature) {
		return domain.ErrSignatureInvalid
	}

	token.ID = token.ComputeID()
	token.Signature = signature
	return nil
}

// Verify reports whether the token's signature and content-derived id both
// hold against the issuer's public key.
func (s *Signer) Verify(token *domain.Token, publicKey []byte) bool {
	if token.ID != token.ComputeID() {
		return false
	}
	return s.keyStore.Verify(token.Algorithm, publicKey, token.CanonicalBytes(), token.Signature)
}
