package app

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	contentRepository "github.com/publiish/bio-did-seq/internal/content/repository"
	contentStore "github.com/publiish/bio-did-seq/internal/content/store"
	contentUsecase "github.com/publiish/bio-did-seq/internal/content/usecase"
)

// BindingRepository returns the content binding repository instance.
func (c *Container) BindingRepository() (contentUsecase.BindingRepository, error) {
	c.domainInit.bindingRepoOnce.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["bindingRepo"] = fmt.Errorf("failed to get database for binding repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.domainInit.bindingRepo = contentRepository.NewMySQLBindingRepository(db)
		case "postgres":
			c.domainInit.bindingRepo = contentRepository.NewPostgreSQLBindingRepository(db)
		default:
			c.initErrors["bindingRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["bindingRepo"]; exists {
		return nil, err
	}
	return c.domainInit.bindingRepo, nil
}

// ContentBucket returns the blob bucket backing the content store.
func (c *Container) ContentBucket() (*blob.Bucket, error) {
	c.domainInit.blobStoreOnce.Do(func() {
		bucket, err := blob.OpenBucket(context.Background(), c.config.ContentBucketURL)
		if err != nil {
			c.initErrors["contentBucket"] = fmt.Errorf("failed to open content bucket: %w", err)
			return
		}
		c.domainInit.blobStore = bucket
	})
	if err, exists := c.initErrors["contentBucket"]; exists {
		return nil, err
	}
	return c.domainInit.blobStore, nil
}

// ContentUseCase returns the gated content use case instance, instrumented
// with business metrics.
func (c *Container) ContentUseCase() (contentUsecase.ContentUseCase, error) {
	c.domainInit.contentUseCaseOnce.Do(func() {
		bucket, err := c.ContentBucket()
		if err != nil {
			c.initErrors["contentUseCase"] = fmt.Errorf("failed to get content bucket for content use case: %w", err)
			return
		}

		bindingRepo, err := c.BindingRepository()
		if err != nil {
			c.initErrors["contentUseCase"] = fmt.Errorf("failed to get binding repository for content use case: %w", err)
			return
		}

		verifier, err := c.TokenUseCase()
		if err != nil {
			c.initErrors["contentUseCase"] = fmt.Errorf("failed to get token use case for content use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["contentUseCase"] = fmt.Errorf("failed to get business metrics for content use case: %w", err)
			return
		}

		store := contentStore.NewBlobStore(bucket, c.config.ContentCallTimeout)
		useCase := contentUsecase.NewContentUseCase(c.config, store, bindingRepo, verifier)
		c.domainInit.contentUseCase = contentUsecase.NewContentUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["contentUseCase"]; exists {
		return nil, err
	}
	return c.domainInit.contentUseCase, nil
}
