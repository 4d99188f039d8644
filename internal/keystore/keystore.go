// Package keystore manages the service signing keypairs.
//
// Keys are held as raw byte slices tagged with an Algorithm so new signature
// schemes can be added by registering them, without touching call sites.
// The default registry carries ML-DSA-87 (the post-quantum scheme used for
// DID verification keys) and Ed25519. Private key material is only ever
// handled inside a scoped acquisition and zeroed on release.
package keystore

import (
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/schemes"
)

// Algorithm tags a signature scheme. It is persisted alongside public keys
// in DID documents and capability tokens.
type Algorithm string

const (
	// AlgorithmMLDSA87 is the ML-DSA-87 post-quantum signature scheme
	// (FIPS 204, the standardized Dilithium5 parameter set).
	AlgorithmMLDSA87 Algorithm = "ml-dsa-87"

	// AlgorithmEd25519 is the Ed25519 signature scheme, kept for
	// interoperability with classical DID controllers.
	AlgorithmEd25519 Algorithm = "ed25519"
)

// schemeNames maps Algorithm tags to circl scheme names.
var schemeNames = map[Algorithm]string{
	AlgorithmMLDSA87: "ML-DSA-87",
	AlgorithmEd25519: "Ed25519",
}

// KeyStore generates keys and performs sign/verify operations through an
// algorithm-keyed scheme registry.
type KeyStore struct {
	registry map[Algorithm]sign.Scheme
}

// New creates a KeyStore with the default algorithm registry.
func New() *KeyStore {
	registry := make(map[Algorithm]sign.Scheme, len(schemeNames))
	for alg, name := range schemeNames {
		registry[alg] = schemes.ByName(name)
	}
	return &KeyStore{registry: registry}
}

// Scheme returns the registered scheme for the algorithm.
func (k *KeyStore) Scheme(alg Algorithm) (sign.Scheme, error) {
	scheme, ok := k.registry[alg]
	if !ok || scheme == nil {
		return nil, fmt.Errorf("unsupported signature algorithm %q", alg)
	}
	return scheme, nil
}

// GenerateKeyPair generates a fresh keypair for the algorithm and returns the
// marshaled public and private key bytes.
func (k *KeyStore) GenerateKeyPair(alg Algorithm) (publicKey []byte, privateKey []byte, err error) {
	scheme, err := k.Scheme(alg)
	if err != nil {
		return nil, nil, err
	}

	pub, priv, err := scheme.GenerateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate %s keypair: %w", alg, err)
	}

	publicKey, err = pub.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	privateKey, err = priv.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	return publicKey, privateKey, nil
}

// Sign signs the message with the private key bytes and returns the signature.
func (k *KeyStore) Sign(alg Algorithm, privateKey []byte, message []byte) ([]byte, error) {
	scheme, err := k.Scheme(alg)
	if err != nil {
		return nil, err
	}

	priv, err := scheme.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal private key: %w", err)
	}

	return scheme.Sign(priv, message, nil), nil
}

// Verify reports whether the signature over the message verifies against the
// public key bytes. Signature validity is a predicate, not an exceptional
// condition: malformed keys or signatures simply verify as false.
func (k *KeyStore) Verify(alg Algorithm, publicKey []byte, message []byte, signature []byte) bool {
	scheme, err := k.Scheme(alg)
	if err != nil {
		return false
	}

	pub, err := scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false
	}

	return scheme.Verify(pub, message, signature, nil)
}
