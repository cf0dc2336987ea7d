// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the HTTP surface: arXiv search proxying and
// saved-paper management. Handlers are a thin mapping over the arxiv client
// and the store; error kinds are translated to status codes here and
// nowhere else.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pdiddy/paperdesk/internal/arxiv"
	"github.com/pdiddy/paperdesk/internal/store"
	"github.com/pdiddy/paperdesk/pkg/types"
)

// Searcher runs an arXiv search. Satisfied by *arxiv.Client; tests
// substitute a stub.
type Searcher interface {
	Search(ctx context.Context, f arxiv.Filter) ([]types.Paper, error)
}

// Server holds the handler dependencies.
type Server struct {
	store    *store.Store
	searcher Searcher
	logger   *slog.Logger
	cors     []string
}

// NewServer wires the store and searcher into an HTTP server.
func NewServer(st *store.Store, searcher Searcher, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    st,
		searcher: searcher,
		logger:   logger,
		cors:     cfg.CORSAllowOrigins,
	}
}

// Handler returns the routed handler wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/arxiv/search", s.handleSearch)
	mux.HandleFunc("POST /api/papers/save", s.handleSavePaper)
	mux.HandleFunc("GET /api/papers/saved", s.handleListSaved)
	mux.HandleFunc("GET /api/papers/{id}", s.handleGetSaved)
	mux.HandleFunc("PATCH /api/papers/{id}", s.handleUpdateSaved)
	mux.HandleFunc("DELETE /api/papers/{id}", s.handleDeleteSaved)

	return s.corsMiddleware(s.logMiddleware(mux))
}
