// Package http provides HTTP handlers for DID document operations.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/publiish/bio-did-seq/internal/did/http/dto"
	"github.com/publiish/bio-did-seq/internal/did/usecase"
	"github.com/publiish/bio-did-seq/internal/httputil"
)

// DocumentHandler handles HTTP requests for DID documents.
type DocumentHandler struct {
	documentUseCase usecase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentUseCase usecase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// Create handles POST /v1/dids.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.Create(c.Request.Context(), dto.ToCreateDocumentInput(&req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.FromDocument(doc))
}

// Resolve handles GET /v1/dids/:did. A version query parameter resolves a
// specific historical version instead of the latest.
func (h *DocumentHandler) Resolve(c *gin.Context) {
	did := c.Param("did")

	if raw := c.Query("version"); raw != "" {
		version, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		doc, err := h.documentUseCase.ResolveVersion(c.Request.Context(), did, version)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.FromDocument(doc))
		return
	}

	doc, err := h.documentUseCase.Resolve(c.Request.Context(), did)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// Update handles PUT /v1/dids/:did.
func (h *DocumentHandler) Update(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.Update(c.Request.Context(), dto.ToUpdateDocumentInput(c.Param("did"), &req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// RotateKey handles POST /v1/dids/:did/rotate.
func (h *DocumentHandler) RotateKey(c *gin.Context) {
	var req dto.RotateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.RotateKey(c.Request.Context(), dto.ToRotateKeyInput(c.Param("did"), &req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// RevokeKey handles POST /v1/dids/:did/revoke-key.
func (h *DocumentHandler) RevokeKey(c *gin.Context) {
	var req dto.RevokeKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	doc, err := h.documentUseCase.RevokeKey(c.Request.Context(), dto.ToRevokeKeyInput(c.Param("did"), &req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromDocument(doc))
}
