package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelstore/internal/config"
	"reelstore/internal/logging"
	"reelstore/internal/movies"
)

// Server exposes the persistence coordinator over HTTP.
type Server struct {
	httpServer      *http.Server
	svc             *movies.Service
	logger          *slog.Logger
	metrics         *metrics
	maxUploadBytes  int64
	shutdownTimeout time.Duration
}

// New builds a Server with routes and middleware configured.
func New(cfg *config.Config, svc *movies.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("server requires config and movie service")
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		svc:             svc,
		logger:          logging.WithComponent(logger, "server"),
		metrics:         newMetrics(registry),
		maxUploadBytes:  cfg.API.MaxUploadBytes,
		shutdownTimeout: time.Duration(cfg.API.ShutdownTimeout) * time.Second,
	}

	router := chi.NewRouter()
	router.Use(s.instrument)

	router.Get("/healthz", s.handleHealth)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Route("/movies", func(r chi.Router) {
		r.Post("/", s.handleSave)
		r.Post("/upload", s.handleUpload)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleMeta)
			r.Get("/file", s.handleLoad)
			r.Get("/thumbnail", s.handleThumbnail)
			r.Get("/cues", s.handleCues)
			r.Delete("/", s.handleDelete)
		})
	})

	s.httpServer = &http.Server{
		Addr:         cfg.API.Bind,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.API.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.API.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler returns the configured HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("bind", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return <-errCh
}
