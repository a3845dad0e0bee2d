package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"caseline/internal/platform/config"
	"caseline/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps a chi mux and an http.Server
type Server struct {
	addr    string
	mux     *chi.Mux
	srv     *stdhttp.Server
	grace   time.Duration
	started chan string
}

// NewServer reads PORT (default :4000) and SHUTDOWN_GRACE from cfg.
// opts receive the mux so callers can mount routes and middleware
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", ":4000")
	if addr != "" && addr[0] != ':' && !hasHost(addr) {
		addr = ":" + addr
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:    addr,
		mux:     m,
		grace:   cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		started: make(chan string, 1),
		srv: &stdhttp.Server{
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func hasHost(addr string) bool {
	_, _, err := net.SplitHostPort(addr)
	return err == nil
}

// Router returns a Router facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured address
func (s *Server) Addr() string { return s.addr }

// Started yields the bound address once the listener is up
func (s *Server) Started() <-chan string { return s.started }

// Run listens until ctx is done, then drains in-flight requests within the grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
	s.started <- ln.Addr().String()

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	log.Info().Dur("grace", s.grace).Msg("http shutting down")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
