package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/targetlink/targetlink/domain/association"
)

// APIServer serves the association read API plus health and metrics
// endpoints.
type APIServer struct {
	store  association.Store
	server *Server
	logger *slog.Logger
}

// NewAPIServer creates an APIServer over the association store.
func NewAPIServer(store association.Store, logger *slog.Logger) *APIServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIServer{store: store, logger: logger}
}

// MountRoutes wires up all routes on the given router.
func (a *APIServer) MountRoutes(router chi.Router) {
	associations := NewAssociationsRouter(a.store, a.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Mount("/associations", associations.Routes())
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())
}

// ListenAndServe starts the HTTP server on the given address and blocks.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.MountRoutes(server.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
