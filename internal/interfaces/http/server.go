// Package http exposes the prediction capability over HTTP for serve mode.
// It reuses the same Predictor as the one-shot CLI paths; failures still
// surface in-band as sentinel-derived results, never as request errors.
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	"github.com/jdsanc/mt-nir/internal/infrastructure/metrics"
	"github.com/jdsanc/mt-nir/internal/predictor"
)

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	srv    *http.Server
	engine *gin.Engine
	logger logging.Logger
}

// NewServer builds the HTTP server with all routes registered.
func NewServer(cfg config.ServerConfig, p predictor.Predictor, m *metrics.Metrics, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("http")

	gin.SetMode(ginMode(cfg.Mode))
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogging(logger))

	h := newPredictionHandler(p, logger)

	api := engine.Group("/api/v1")
	api.POST("/predictions", h.PredictSingle)
	api.POST("/predictions/batch", h.PredictBatch)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if reg := m.Registry(); reg != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	return &Server{
		engine: engine,
		logger: logger,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully within ctx's deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
