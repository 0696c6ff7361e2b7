// Package httpapi serves a read-only JSON API over a user's receipts and
// product groups, for dashboards and other local frontends.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/custodia-labs/receipta/internal/core/ports/driving"
	"github.com/custodia-labs/receipta/internal/logger"
)

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("httpapi: analysis service is required")

// Ports aggregates the driving ports the API calls.
type Ports struct {
	Analysis driving.AnalysisService

	// Receipt backs the /api/receipts routes. Optional.
	Receipt driving.ReceiptService

	UserID string
}

// Server is the HTTP API server.
type Server struct {
	ports          *Ports
	allowedOrigins []string
}

// NewServer creates a server. An empty origin list allows any origin.
func NewServer(ports *Ports, allowedOrigins []string) (*Server, error) {
	if ports == nil || ports.Analysis == nil {
		return nil, ErrMissingAnalysisService
	}
	if ports.UserID == "" {
		ports.UserID = "local"
	}
	return &Server{ports: ports, allowedOrigins: allowedOrigins}, nil
}

// Handler returns the API routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/products", s.handleProducts)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/receipts", s.handleReceipts)
	mux.HandleFunc("GET /api/receipts/{id}", s.handleReceipt)
	mux.HandleFunc("GET /api/shared/{id}", s.handleShared)

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return c.Handler(mux)
}

// Run listens on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
