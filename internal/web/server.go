// Package web exposes the extractor over HTTP: ordinance PDFs go in as a
// multipart upload, the workbook comes back as a download.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/settorestrade/ordinanze-xls/internal/config"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

// Server wraps the gin engine and its dependencies.
type Server struct {
	cfg        *config.Config
	pdfService *pdf.Service
	engine     *gin.Engine
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.MaxMultipartMemory = cfg.MaxFileSize

	s := &Server{
		cfg:        cfg,
		pdfService: pdfService,
		engine:     engine,
	}
	s.registerRoutes()

	return s, nil
}

// registerRoutes wires all endpoints.
func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api/ordinanze")
	api.POST("/workbook", s.handleWorkbook)
	api.POST("/records", s.handleRecords)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Println("HTTP server stopped")
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    s.cfg.ServerName,
		"version": s.cfg.Version,
	})
}
