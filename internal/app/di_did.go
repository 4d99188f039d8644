package app

import (
	"fmt"

	didRepository "github.com/publiish/bio-did-seq/internal/did/repository"
	didUsecase "github.com/publiish/bio-did-seq/internal/did/usecase"
)

// DocumentRepository returns the DID document repository instance.
func (c *Container) DocumentRepository() (didUsecase.DocumentRepository, error) {
	c.domainInit.documentRepoOnce.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["documentRepo"] = fmt.Errorf("failed to get database for document repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.domainInit.documentRepo = didRepository.NewMySQLDocumentRepository(db)
		case "postgres":
			c.domainInit.documentRepo = didRepository.NewPostgreSQLDocumentRepository(db)
		default:
			c.initErrors["documentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["documentRepo"]; exists {
		return nil, err
	}
	return c.domainInit.documentRepo, nil
}

// DocumentUseCase returns the DID document use case instance, instrumented
// with business metrics.
func (c *Container) DocumentUseCase() (didUsecase.DocumentUseCase, error) {
	c.domainInit.documentUseCaseOnce.Do(func() {
		docRepo, err := c.DocumentRepository()
		if err != nil {
			c.initErrors["documentUseCase"] = fmt.Errorf("failed to get document repository for document use case: %w", err)
			return
		}

		ledger, err := c.LedgerUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = fmt.Errorf("failed to get revocation ledger for document use case: %w", err)
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["documentUseCase"] = fmt.Errorf("failed to get tx manager for document use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["documentUseCase"] = fmt.Errorf("failed to get business metrics for document use case: %w", err)
			return
		}

		useCase := didUsecase.NewDocumentUseCase(c.config, docRepo, ledger, c.KeyStore(), txManager)
		c.domainInit.documentUseCase = didUsecase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["documentUseCase"]; exists {
		return nil, err
	}
	return c.domainInit.documentUseCase, nil
}
