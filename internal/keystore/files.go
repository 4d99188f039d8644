package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// Key file layout: <dir>/<alg>_public.key and <dir>/<alg>_secret.key, both
// base64. When a passphrase is configured the secret file holds an AES-GCM
// sealed payload prefixed with encPrefix; the sealing key is derived from
// the passphrase with HKDF-SHA256.
const (
	publicSuffix = "_public.key"
	secretSuffix = "_secret.key"
	encPrefix    = "ENCv1:"
	encInfo      = "keystore-file-v1"
)

// FileStore persists keypairs on disk. The private key never stays in memory
// beyond the scope of WithPrivateKey.
type FileStore struct {
	dir        string
	passphrase []byte
}

// NewFileStore creates a FileStore rooted at dir. An empty passphrase stores
// secret keys as plain base64.
func NewFileStore(dir string, passphrase string) *FileStore {
	return &FileStore{dir: dir, passphrase: []byte(passphrase)}
}

// SaveKeyPair writes the keypair files for the algorithm, creating dir if
// needed. Secret files are written with mode 0600.
func (f *FileStore) SaveKeyPair(alg Algorithm, publicKey []byte, privateKey []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create keystore dir: %w", err)
	}

	pubPath := filepath.Join(f.dir, string(alg)+publicSuffix)
	pubData := base64.StdEncoding.EncodeToString(publicKey)
	if err := os.WriteFile(pubPath, []byte(pubData), 0o644); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	secret, err := f.sealSecret(privateKey)
	if err != nil {
		return err
	}

	secPath := filepath.Join(f.dir, string(alg)+secretSuffix)
	if err := os.WriteFile(secPath, []byte(secret), 0o600); err != nil {
		return fmt.Errorf("failed to write secret key file: %w", err)
	}

	return nil
}

// LoadPublicKey reads the public key bytes for the algorithm.
func (f *FileStore) LoadPublicKey(alg Algorithm) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, string(alg)+publicSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
}

// WithPrivateKey loads the private key for the algorithm, passes it to fn and
// zeroes the buffer when fn returns. The key bytes must not escape fn.
func (f *FileStore) WithPrivateKey(alg Algorithm, fn func(privateKey []byte) error) error {
	data, err := os.ReadFile(filepath.Join(f.dir, string(alg)+secretSuffix))
	if err != nil {
		return fmt.Errorf("failed to read secret key file: %w", err)
	}

	privateKey, err := f.openSecret(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	defer Zero(privateKey)

	return fn(privateKey)
}

// sealSecret encodes (and, with a passphrase, encrypts) private key bytes.
func (f *FileStore) sealSecret(privateKey []byte) (string, error) {
	if len(f.passphrase) == 0 {
		return base64.StdEncoding.EncodeToString(privateKey), nil
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := f.deriveAEAD(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, privateKey, nil)
	payload := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = append(payload, sealed...)

	return encPrefix + base64.StdEncoding.EncodeToString(payload), nil
}

// openSecret reverses sealSecret.
func (f *FileStore) openSecret(data string) ([]byte, error) {
	if !strings.HasPrefix(data, encPrefix) {
		return base64.StdEncoding.DecodeString(data)
	}
	if len(f.passphrase) == 0 {
		return nil, fmt.Errorf("secret key file is encrypted but no passphrase is configured")
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(data, encPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key file: %w", err)
	}
	if len(payload) < 16+12 {
		return nil, fmt.Errorf("secret key file is truncated")
	}

	salt := payload[:16]
	aead, err := f.deriveAEAD(salt)
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(payload) < 16+nonceSize {
		return nil, fmt.Errorf("secret key file is truncated")
	}
	nonce := payload[16 : 16+nonceSize]

	privateKey, err := aead.Open(nil, nonce, payload[16+nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret key file: %w", err)
	}

	return privateKey, nil
}

// deriveAEAD derives an AES-256-GCM cipher from the passphrase and salt.
func (f *FileStore) deriveAEAD(salt []byte) (cipher.AEAD, error) {
	kdf := hkdf.New(sha256.New, f.passphrase, salt, []byte(encInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive file key: %w", err)
	}
	defer Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
