// Package http provides HTTP handlers for capability-gated content access.
package http

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/content/http/dto"
	"github.com/publiish/bio-did-seq/internal/content/usecase"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
	"github.com/publiish/bio-did-seq/internal/httputil"
)

// TokenHeader carries the leaf token id on content fetches.
const TokenHeader = "X-Capability-Token"

// ChainLoader reassembles a delegation chain from its leaf token id.
type ChainLoader interface {
	GetChain(ctx context.Context, tokenID string) (capabilityDomain.Chain, error)
}

// ContentHandler handles HTTP requests for stored content.
type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
	chains         ChainLoader
	logger         *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentUseCase usecase.ContentUseCase, chains ChainLoader, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		chains:         chains,
		logger:         logger,
	}
}

// Store handles POST /v1/content.
func (h *ContentHandler) Store(c *gin.Context) {
	var req dto.StoreContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	chain, err := h.chains.GetChain(ctx, req.TokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	contentID, err := h.contentUseCase.AuthorizeAndStore(ctx, chain, data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.StoreContentResponse{ContentID: contentID, Size: len(data)})
}

// Fetch handles GET /v1/content/:cid. The leaf token id is presented in the
// X-Capability-Token header and the bytes are returned verbatim.
func (h *ContentHandler) Fetch(c *gin.Context) {
	tokenID := c.GetHeader(TokenHeader)
	if tokenID == "" {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing capability token header"), h.logger)
		return
	}

	ctx := c.Request.Context()
	chain, err := h.chains.GetChain(ctx, tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data, err := h.contentUseCase.AuthorizeAndFetch(ctx, chain, c.Param("cid"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}
