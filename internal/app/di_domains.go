package app

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"gocloud.dev/blob"

	capabilityUsecase "github.com/publiish/bio-did-seq/internal/capability/usecase"
	contentUsecase "github.com/publiish/bio-did-seq/internal/content/usecase"
	didUsecase "github.com/publiish/bio-did-seq/internal/did/usecase"
	"github.com/publiish/bio-did-seq/internal/http"
	"github.com/publiish/bio-did-seq/internal/metrics"
	revocationUsecase "github.com/publiish/bio-did-seq/internal/revocation/usecase"
	userUsecase "github.com/publiish/bio-did-seq/internal/user/usecase"

	capabilityHTTP "github.com/publiish/bio-did-seq/internal/capability/http"
	contentHTTP "github.com/publiish/bio-did-seq/internal/content/http"
	didHTTP "github.com/publiish/bio-did-seq/internal/did/http"
	userHTTP "github.com/publiish/bio-did-seq/internal/user/http"
)

// domainContainers holds the lazily initialized domain components.
type domainContainers struct {
	documentRepoOnce    sync.Once
	ledgerOnce          sync.Once
	documentUseCaseOnce sync.Once
	tokenRepoOnce       sync.Once
	tokenUseCaseOnce    sync.Once
	bindingRepoOnce     sync.Once
	blobStoreOnce       sync.Once
	contentUseCaseOnce  sync.Once
	userRepoOnce        sync.Once
	userUseCaseOnce     sync.Once

	documentRepo    didUsecase.DocumentRepository
	ledgerUseCase   revocationUsecase.LedgerUseCase
	documentUseCase didUsecase.DocumentUseCase
	tokenRepo       capabilityUsecase.TokenRepository
	tokenUseCase    capabilityUsecase.TokenUseCase
	bindingRepo     contentUsecase.BindingRepository
	blobStore       *blob.Bucket
	contentUseCase  contentUsecase.ContentUseCase
	userRepo        userUsecase.UserRepository
	userUseCase     userUsecase.UseCase
}

// meterProviderOrNil unwraps the optional metrics provider into the meter
// provider interface, keeping nil as nil.
func meterProviderOrNil(provider *metrics.Provider) metric.MeterProvider {
	if provider == nil {
		return nil
	}
	return provider.MeterProvider()
}

// handlers assembles the API handlers for the HTTP server.
func (c *Container) handlers() (http.Handlers, error) {
	logger := c.Logger()

	documentUseCase, err := c.DocumentUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get document use case: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get token use case: %w", err)
	}

	contentUseCase, err := c.ContentUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get content use case: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get user use case: %w", err)
	}

	return http.Handlers{
		Documents: didHTTP.NewDocumentHandler(documentUseCase, logger),
		Tokens:    capabilityHTTP.NewTokenHandler(tokenUseCase, logger),
		Content:   contentHTTP.NewContentHandler(contentUseCase, tokenUseCase, logger),
		Users:     userHTTP.NewUserHandler(userUseCase, logger),
	}, nil
}
