// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jscharber/textclinic/pkg/analysis"
	"github.com/jscharber/textclinic/pkg/config"
)

// Server is the HTTP front of the analysis service.
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	service    *analysis.Service
	httpServer *http.Server
}

// New creates an HTTP server around the given analysis service.
func New(cfg *config.Config, logger *zap.Logger, service *analysis.Service) *Server {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))

	s := &Server{
		config:  cfg,
		logger:  logger,
		service: service,
	}
	s.registerRoutes(router)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.healthHandler)

	controller := NewAnalysisController(s.service, s.config.Analysis.MaxBatchSize)
	controller.RegisterRoutes(router.Group("/api/v1"))
}

func (s *Server) healthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Start runs the server until the context is cancelled or a termination
// signal arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	}

	return s.Shutdown()
}

// Shutdown stops the server within the configured timeout.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", zap.Error(err))
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
