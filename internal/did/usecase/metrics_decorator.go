package usecase

import (
	"context"
	"time"

	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, "did", operation, status)
	d.metrics.RecordDuration(ctx, "did", operation, time.Since(start), status)
}

func (d *documentUseCaseWithMetrics) Create(ctx context.Context, input *didDomain.CreateDocumentInput) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Create(ctx, input)
	d.record(ctx, "document_create", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) Update(ctx context.Context, input *didDomain.UpdateDocumentInput) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Update(ctx, input)
	d.record(ctx, "document_update", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) Resolve(ctx context.Context, did string) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Resolve(ctx, did)
	d.record(ctx, "document_resolve", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) ResolveVersion(ctx context.Context, did string, version uint64) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.ResolveVersion(ctx, did, version)
	d.record(ctx, "document_resolve_version", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) RotateKey(ctx context.Context, input *didDomain.RotateKeyInput) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.RotateKey(ctx, input)
	d.record(ctx, "key_rotate", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) RevokeKey(ctx context.Context, input *didDomain.RevokeKeyInput) (*didDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.RevokeKey(ctx, input)
	d.record(ctx, "key_revoke", start, err)
	return doc, err
}
