package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ruteri/geopsi/store"
)

// Config configures a Server.
type Config struct {
	// ListenAddr is the address the HTTP server listens on.
	ListenAddr string

	// TextFormat selects the compact text codec for the intermediate
	// wire messages instead of the default JSON envelope.
	TextFormat bool

	// Store records a SessionRecord for every completed session. If
	// nil, a MemoryStore of default capacity is used.
	Store store.Store

	// Log receives structured request and session logs. If nil,
	// slog.Default() is used.
	Log *slog.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the demo PSI HTTP API.
type Server struct {
	cfg Config
	srv *http.Server
}

// New builds a Server from cfg, filling in defaults, and constructs its
// router.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore(0)
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(30 * time.Second))

	h := &handler{cfg: cfg}
	r.Post("/psi", h.handlePSI)
	r.Get("/healthz", handleHealthz)

	s.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// ListenAndServe starts the HTTP listener. It blocks until the server
// stops, returning http.ErrServerClosed on a clean Shutdown.
func (s *Server) ListenAndServe() error {
	s.cfg.Log.Info("starting psi demo server", "addr", s.cfg.ListenAddr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
