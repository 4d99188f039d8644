package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	capabilityHTTP "github.com/publiish/bio-did-seq/internal/capability/http"
	"github.com/publiish/bio-did-seq/internal/config"
	contentHTTP "github.com/publiish/bio-did-seq/internal/content/http"
	didHTTP "github.com/publiish/bio-did-seq/internal/did/http"
	"github.com/publiish/bio-did-seq/internal/metrics"
	userHTTP "github.com/publiish/bio-did-seq/internal/user/http"
)

// Handlers groups the API handlers mounted by the server.
type Handlers struct {
	Documents *didHTTP.DocumentHandler
	Tokens    *capabilityHTTP.TokenHandler
	Content   *contentHTTP.ContentHandler
	Users     *userHTTP.UserHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server with routing and middleware wired.
// The meter provider is optional; when nil no HTTP metrics are recorded.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	meterProvider metric.MeterProvider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	dids := v1.Group("/dids")
	{
		dids.POST("", handlers.Documents.Create)
		dids.GET("/:did", handlers.Documents.Resolve)
		dids.PUT("/:did", handlers.Documents.Update)
		dids.POST("/:did/rotate", handlers.Documents.RotateKey)
		dids.POST("/:did/revoke-key", handlers.Documents.RevokeKey)
	}

	capabilities := v1.Group("/capabilities")
	{
		capabilities.POST("", handlers.Tokens.IssueRoot)
		capabilities.POST("/delegate", handlers.Tokens.Delegate)
		capabilities.POST("/verify", handlers.Tokens.Verify)
		capabilities.POST("/revoke", handlers.Tokens.Revoke)
		capabilities.GET("/:id/chain", handlers.Tokens.GetChain)
	}

	content := v1.Group("/content")
	{
		content.POST("", handlers.Content.Store)
		content.GET("/:cid", handlers.Content.Fetch)
	}

	users := v1.Group("/users")
	{
		users.POST("", handlers.Users.Register)
		users.POST("/login", handlers.Users.Login)
	}

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
