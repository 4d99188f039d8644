package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/metrics"
)

// contentUseCaseWithMetrics decorates ContentUseCase with metrics instrumentation.
type contentUseCaseWithMetrics struct {
	next    ContentUseCase
	metrics metrics.BusinessMetrics
}

// NewContentUseCaseWithMetrics wraps a ContentUseCase with metrics recording.
func NewContentUseCaseWithMetrics(useCase ContentUseCase, m metrics.BusinessMetrics) ContentUseCase {
	return &contentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *contentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "content", operation, status)
	c.metrics.RecordDuration(ctx, "content", operation, time.Since(start), status)
}

func (c *contentUseCaseWithMetrics) AuthorizeAndStore(ctx context.Context, chain capabilityDomain.Chain, data []byte) (string, error) {
	start := time.Now()
	id, err := c.next.AuthorizeAndStore(ctx, chain, data)
	c.record(ctx, "content_store", start, err)
	return id, err
}

func (c *contentUseCaseWithMetrics) AuthorizeAndFetch(ctx context.Context, chain capabilityDomain.Chain, contentID string) ([]byte, error) {
	start := time.Now()
	data, err := c.next.AuthorizeAndFetch(ctx, chain, contentID)
	c.record(ctx, "content_fetch", start, err)
	return data, err
}
