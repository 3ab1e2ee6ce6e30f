package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"xwitter/internal/config"
	"xwitter/internal/store"
)

// Server exposes /metrics and /health on the metrics address.
type Server struct {
	Logger *slog.Logger
	Config *config.Config
	Store  *store.Store

	srv *http.Server
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.Server")

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", s.health)

	s.srv = &http.Server{
		Addr:              s.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting metrics server", "addr", s.srv.Addr)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error("failed to shut down metrics server", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.HealthCheck(r.Context()); err != nil {
		s.Logger.Error("Health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}
