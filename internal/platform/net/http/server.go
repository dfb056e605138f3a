package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"linetrack/internal/platform/config"
	"linetrack/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	defaultAddr       = ":4000"
	readHeaderTimeout = 10 * time.Second
	// shutdownGrace is how long in flight requests get once Run's context ends
	shutdownGrace = 10 * time.Second
)

// Server owns the chi mux and the listener
type Server struct {
	mux *chi.Mux
	hs  *http.Server
}

// NewServer listens on cfg's ADDR, :4000 when unset. opts can touch the mux before routes go on
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{mux: mux, hs: &http.Server{
		Addr:              cfg.MayString("ADDR", defaultAddr),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.hs.Addr }

// Run serves until the listener fails or ctx ends. A cancelled ctx is a clean stop
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	defer context.AfterFunc(ctx, func() {
		drain, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		if err := s.hs.Shutdown(drain); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	})()

	log.Info().Str("addr", s.hs.Addr).Msg("http listening")
	if err := s.hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http stopped")
	return nil
}

// Shutdown stops accepting and waits for in flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error { return s.hs.Shutdown(ctx) }
