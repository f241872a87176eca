package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"devstreams/internal/platform/config"
	"devstreams/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root mux and the listener
type Server struct {
	mux *chi.Mux
	srv *http.Server
}

// NewServer reads PORT, READ_TIMEOUT, WRITE_TIMEOUT and IDLE_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux: mux,
		srv: &http.Server{
			Addr:              cfg.MayPort("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 35*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router is the root router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the listen address, ":4000" form
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains in flight requests for up to grace
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", grace).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
