// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/publiish/bio-did-seq/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON
// response. Authorization failures all map to 403 but keep distinct error
// codes so clients can tell an expired chain from a revoked one.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrStaleVersion):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "stale_version",
			Message: "The document changed since it was read; re-resolve and retry",
		}

	case apperrors.Is(err, apperrors.ErrScopeExpansion):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "scope_expansion",
			Message: "Delegation must narrow the parent grant, never widen it",
		}

	case apperrors.Is(err, apperrors.ErrTokenExpired):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "token_expired",
			Message: "The token or one of its ancestors has expired",
		}

	case apperrors.Is(err, apperrors.ErrTokenRevoked):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "token_revoked",
			Message: "The token has been revoked",
		}

	case apperrors.Is(err, apperrors.ErrKeyRevoked):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "key_revoked",
			Message: "The signing key has been revoked",
		}

	case apperrors.Is(err, apperrors.ErrAllKeysRevoked):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "all_keys_revoked",
			Message: "Every key of the document is revoked; the identity is frozen",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "The presented proof does not verify",
		}

	case apperrors.Is(err, apperrors.ErrStoreUnavailable):
		statusCode = http.StatusBadGateway
		errorResponse = ErrorResponse{
			Error:   "store_unavailable",
			Message: "The content store could not serve the request",
		}

	case apperrors.Is(err, apperrors.ErrTimeout):
		statusCode = http.StatusGatewayTimeout
		errorResponse = ErrorResponse{
			Error:   "timeout",
			Message: "The operation timed out before completing",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}
