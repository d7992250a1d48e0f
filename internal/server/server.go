package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"docqa/config"
	"docqa/internal/usecase"
)

// Server exposes the document Q&A pipeline over HTTP.
type Server struct {
	cfg    config.ServerConfig
	ingest *usecase.IngestUseCase
	query  *usecase.QueryUseCase
	log    *log.Logger
	http   *http.Server
}

// New builds the server and its router.
func New(cfg config.ServerConfig, ingest *usecase.IngestUseCase, query *usecase.QueryUseCase, logger *log.Logger) *Server {
	s := &Server{cfg: cfg, ingest: ingest, query: query, log: logger}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.RequestTimeout(),
		WriteTimeout: cfg.RequestTimeout(),
	}
	return s
}

// Router builds the gin engine with all routes. Exposed separately so
// tests can drive it with httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())
	router.MaxMultipartMemory = s.cfg.MaxUploadBytes

	router.POST("/upload", s.handleUpload)
	router.POST("/query", s.handleQuery)
	router.GET("/documents", s.handleListDocuments)
	router.GET("/documents/:id", s.handleGetDocument)
	router.DELETE("/documents/:id", s.handleDeleteDocument)
	router.GET("/docs", s.handleDocs)
	router.GET("/healthz", s.handleHealth)
	return router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	s.log.Info("shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
