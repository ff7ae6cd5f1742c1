package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server serves one chi mux until its Run context ends
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads the listen address and timeouts from cfg. WRITE_TIMEOUT
// has to cover a figures request, which fetches the upstream once per chart
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux:   mux,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 5*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 90*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router is the mount point for middleware and routes
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens and serves until ctx ends or Shutdown is called. Ending ctx
// drains open connections for up to SHUTDOWN_GRACE before Run returns
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "listen %s", s.srv.Addr)
	}
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	drained := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(drained)
		grace, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		log.Info().Dur("grace", s.grace).Msg("draining connections")
		if err := s.srv.Shutdown(grace); err != nil {
			log.Warn().Err(err).Msg("drain cut short")
		}
	})

	err = s.srv.Serve(ln)
	if !stop() {
		<-drained
	}
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server without waiting for Run's context
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
