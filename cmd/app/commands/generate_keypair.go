package commands

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/publiish/bio-did-seq/internal/app"
	"github.com/publiish/bio-did-seq/internal/config"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

// RunGenerateKeypair generates a fresh signing keypair and saves it to the
// configured keystore directory. The public key is printed base64-encoded so
// it can be registered on a DID document.
func RunGenerateKeypair(algorithm string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	if algorithm == "" {
		algorithm = cfg.SigningAlgorithm
	}
	alg := keystore.Algorithm(algorithm)

	publicKey, privateKey, err := container.KeyStore().GenerateKeyPair(alg)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	fileStore := container.FileStore()
	if err := fileStore.SaveKeyPair(alg, publicKey, privateKey); err != nil {
		return fmt.Errorf("failed to save keypair: %w", err)
	}

	logger.Info("keypair generated",
		slog.String("algorithm", string(alg)),
		slog.String("dir", cfg.KeystoreDir),
	)
	fmt.Printf("algorithm: %s\n", alg)
	fmt.Printf("public_key: %s\n", base64.StdEncoding.EncodeToString(publicKey))
	return nil
}
