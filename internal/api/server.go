package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"xwitter/internal/backend"
	"xwitter/internal/config"
	"xwitter/internal/postdetails"
	"xwitter/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server is the backend-for-frontend: it owns the auth cookie and proxies
// every browser call to the Xwitter backend.
type Server struct {
	Logger  *slog.Logger
	Config  *config.Config
	Backend *backend.Client
	Posts   *postdetails.Service
	Store   *store.Store

	server *http.Server
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	s.server = &http.Server{
		Handler:           s.routes(),
		Addr:              s.Config.Addr,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error("failed to shut down API server", "error", err)
		}
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.Store != nil {
		if err := s.Store.HealthCheck(r.Context()); err != nil {
			logger(r.Context()).Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Store is unavailable.")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
