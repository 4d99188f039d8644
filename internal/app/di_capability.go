package app

import (
	"fmt"

	capabilityRepository "github.com/publiish/bio-did-seq/internal/capability/repository"
	capabilityService "github.com/publiish/bio-did-seq/internal/capability/service"
	capabilityUsecase "github.com/publiish/bio-did-seq/internal/capability/usecase"
	revocationRepository "github.com/publiish/bio-did-seq/internal/revocation/repository"
	revocationUsecase "github.com/publiish/bio-did-seq/internal/revocation/usecase"
)

// LedgerUseCase returns the revocation ledger instance.
func (c *Container) LedgerUseCase() (revocationUsecase.LedgerUseCase, error) {
	c.domainInit.ledgerOnce.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["ledgerUseCase"] = fmt.Errorf("failed to get database for revocation ledger: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.domainInit.ledgerUseCase = revocationUsecase.NewLedgerUseCase(
				revocationRepository.NewMySQLTokenRevocationRepository(db),
				revocationRepository.NewMySQLKeyRevocationRepository(db),
			)
		case "postgres":
			c.domainInit.ledgerUseCase = revocationUsecase.NewLedgerUseCase(
				revocationRepository.NewPostgreSQLTokenRevocationRepository(db),
				revocationRepository.NewPostgreSQLKeyRevocationRepository(db),
			)
		default:
			c.initErrors["ledgerUseCase"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["ledgerUseCase"]; exists {
		return nil, err
	}
	return c.domainInit.ledgerUseCase, nil
}

// TokenRepository returns the capability token repository instance.
func (c *Container) TokenRepository() (capabilityUsecase.TokenRepository, error) {
	c.domainInit.tokenRepoOnce.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["tokenRepo"] = fmt.Errorf("failed to get database for token repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.domainInit.tokenRepo = capabilityRepository.NewMySQLTokenRepository(db)
		case "postgres":
			c.domainInit.tokenRepo = capabilityRepository.NewPostgreSQLTokenRepository(db)
		default:
			c.initErrors["tokenRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["tokenRepo"]; exists {
		return nil, err
	}
	return c.domainInit.tokenRepo, nil
}

// TokenUseCase returns the capability token engine instance, instrumented
// with business metrics.
func (c *Container) TokenUseCase() (capabilityUsecase.TokenUseCase, error) {
	c.domainInit.tokenUseCaseOnce.Do(func() {
		tokenRepo, err := c.TokenRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get token repository for token use case: %w", err)
			return
		}

		resolver, err := c.DocumentUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get document use case for token use case: %w", err)
			return
		}

		ledger, err := c.LedgerUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get revocation ledger for token use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get business metrics for token use case: %w", err)
			return
		}

		signer := capabilityService.NewSigner(c.KeyStore())
		useCase := capabilityUsecase.NewTokenUseCase(c.config, tokenRepo, resolver, ledger, signer)
		c.domainInit.tokenUseCase = capabilityUsecase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, err
	}
	return c.domainInit.tokenUseCase, nil
}
