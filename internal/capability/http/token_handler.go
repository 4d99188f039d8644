// Package http provides HTTP handlers for capability token operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/capability/http/dto"
	"github.com/publiish/bio-did-seq/internal/capability/usecase"
	"github.com/publiish/bio-did-seq/internal/httputil"
)

// TokenHandler handles HTTP requests for capability tokens.
type TokenHandler struct {
	tokenUseCase usecase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenUseCase usecase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueRoot handles POST /v1/capabilities.
func (h *TokenHandler) IssueRoot(c *gin.Context) {
	var req dto.IssueRootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.tokenUseCase.IssueRoot(c.Request.Context(), dto.ToIssueRootInput(&req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.FromToken(token))
}

// Delegate handles POST /v1/capabilities/delegate.
func (h *TokenHandler) Delegate(c *gin.Context) {
	var req dto.DelegateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.tokenUseCase.Delegate(c.Request.Context(), dto.ToDelegateInput(&req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.FromToken(token))
}

// Verify handles POST /v1/capabilities/verify. The chain is loaded from the
// leaf token id and walked root to leaf.
func (h *TokenHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	chain, err := h.tokenUseCase.GetChain(ctx, req.TokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	actions, err := h.tokenUseCase.Verify(ctx, chain, capabilityDomain.Action(req.Action), req.Resource)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Authorized:       true,
		EffectiveActions: fromActions(actions),
	})
}

// Revoke handles POST /v1/capabilities/revoke.
func (h *TokenHandler) Revoke(c *gin.Context) {
	var req dto.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), req.TokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetChain handles GET /v1/capabilities/:id/chain.
func (h *TokenHandler) GetChain(c *gin.Context) {
	chain, err := h.tokenUseCase.GetChain(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromChain(chain))
}

func fromActions(actions capabilityDomain.Actions) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}
