package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capabilityHTTP "github.com/publiish/bio-did-seq/internal/capability/http"
	"github.com/publiish/bio-did-seq/internal/config"
	contentHTTP "github.com/publiish/bio-did-seq/internal/content/http"
	didHTTP "github.com/publiish/bio-did-seq/internal/did/http"
	"github.com/publiish/bio-did-seq/internal/metrics"
	userHTTP "github.com/publiish/bio-did-seq/internal/user/http"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testHandlers builds handlers with nil use cases; only routes that never
// reach a use case are exercised here.
func testHandlers() Handlers {
	logger := testLogger()
	return Handlers{
		Documents: didHTTP.NewDocumentHandler(nil, logger),
		Tokens:    capabilityHTTP.NewTokenHandler(nil, logger),
		Content:   contentHTTP.NewContentHandler(nil, nil, logger),
		Users:     userHTTP.NewUserHandler(nil, logger),
	}
}

func TestServerHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		RateLimitEnabled: false,
	}
	server := NewServer(cfg, testLogger(), testHandlers(), nil)

	for _, path := range []string{"/health", "/ready"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		server.GetHandler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(1, 2, testLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Burst of 2 is allowed, the third immediate request is rejected.
	statuses := make([]int, 3)
	for i := range statuses {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		statuses[i] = w.Code
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])

	// A different client keeps its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := testLogger()

	assert.Nil(t, createCORSMiddleware(false, "https://app.example.com", logger))
	assert.Nil(t, createCORSMiddleware(true, "", logger))
	assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	assert.NotNil(t, createCORSMiddleware(true, "https://app.example.com", logger))
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"},
		parseOrigins(" https://a.example.com , https://b.example.com "))
}

func TestMetricsServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := metrics.NewProvider("bio_did_seq")
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	server := NewMetricsServer("127.0.0.1", 0, testLogger(), provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
