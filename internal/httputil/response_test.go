package httputil_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	apperrors "github.com/publiish/bio-did-seq/internal/errors"
	"github.com/publiish/bio-did-seq/internal/httputil"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"NotFound", apperrors.ErrNotFound, 404, "not_found"},
		{"Unauthorized", apperrors.ErrUnauthorized, 401, "unauthorized"},
		{"Forbidden", apperrors.ErrForbidden, 403, "forbidden"},
		{"ScopeExpansion", apperrors.ErrScopeExpansion, 422, "scope_expansion"},
		{"InvalidInput", apperrors.ErrInvalidInput, 422, "invalid_input"},
		{"StaleVersion", apperrors.ErrStaleVersion, 409, "stale_version"},
		{"TokenExpired", apperrors.ErrTokenExpired, 403, "token_expired"},
		{"TokenRevoked", apperrors.ErrTokenRevoked, 403, "token_revoked"},
		{"KeyRevoked", apperrors.ErrKeyRevoked, 403, "key_revoked"},
		{"AllKeysRevoked", apperrors.ErrAllKeysRevoked, 403, "all_keys_revoked"},
		{"StoreUnavailable", apperrors.ErrStoreUnavailable, 502, "store_unavailable"},
		{"Timeout", apperrors.ErrTimeout, 504, "timeout"},
		{"Unknown", assert.AnError, 500, "internal_error"},
		// Wrapped domain errors keep their kind's mapping.
		{"WrappedStale", didDomain.ErrStaleDocumentVersion, 409, "stale_version"},
		{"WrappedFrozen", didDomain.ErrDocumentFrozen, 403, "all_keys_revoked"},
		{"WrappedChainBroken", capabilityDomain.ErrChainBroken, 401, "unauthorized"},
		{"WrappedTokenNotFound", capabilityDomain.ErrTokenNotFound, 404, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			httputil.HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
		})
	}
}
