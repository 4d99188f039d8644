package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, "capability", operation, status)
	t.metrics.RecordDuration(ctx, "capability", operation, time.Since(start), status)
}

func (t *tokenUseCaseWithMetrics) IssueRoot(ctx context.Context, input *capabilityDomain.IssueRootInput) (*capabilityDomain.Token, error) {
	start := time.Now()
	token, err := t.next.IssueRoot(ctx, input)
	t.record(ctx, "token_issue_root", start, err)
	return token, err
}

func (t *tokenUseCaseWithMetrics) Delegate(ctx context.Context, input *capabilityDomain.DelegateInput) (*capabilityDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Delegate(ctx, input)
	t.record(ctx, "token_delegate", start, err)
	return token, err
}

func (t *tokenUseCaseWithMetrics) Verify(ctx context.Context, chain capabilityDomain.Chain, action capabilityDomain.Action, resource string) (capabilityDomain.Actions, error) {
	start := time.Now()
	actions, err := t.next.Verify(ctx, chain, action, resource)
	t.record(ctx, "token_verify", start, err)
	return actions, err
}

func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, tokenID string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, tokenID)
	t.record(ctx, "token_revoke", start, err)
	return err
}

func (t *tokenUseCaseWithMetrics) GetChain(ctx context.Context, tokenID string) (capabilityDomain.Chain, error) {
	start := time.Now()
	chain, err := t.next.GetChain(ctx, tokenID)
	t.record(ctx, "chain_get", start, err)
	return chain, err
}
