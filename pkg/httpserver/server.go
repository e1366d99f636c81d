package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type settings struct {
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
	drainTimeout time.Duration
	base         *http.Server
	log          *slog.Logger
	onStart      []func(*slog.Logger)
	onStop       []func(*slog.Logger)
}

// Server runs an http.Server with graceful shutdown on context
// cancellation and on SIGINT/SIGTERM.
type Server struct {
	opts     settings
	mu       sync.Mutex
	active   *http.Server
	stopOnce sync.Once
}

// New builds a Server from the given options. Unset values fall back to
// listening on :8080 with a 5s drain window.
func New(opts ...Option) *Server {
	s := settings{
		addr:         ":8080",
		drainTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{opts: s}
}

// Run serves handler until ctx is canceled, an interrupt or TERM signal
// arrives, or the listener fails. It blocks for the whole server lifetime
// and returns nil after a clean shutdown; startup and listen failures come
// back wrapped in ErrStart. A nil handler serves 404 for everything.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	srv, err := s.arm(handler)
	if err != nil {
		return err
	}

	for _, hook := range s.opts.onStart {
		hook(s.opts.log)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var runErr error
	select {
	case <-ctx.Done():
		_ = s.Shutdown(context.Background())
		runErr = <-serveErr
	case <-interrupt:
		_ = s.Shutdown(context.Background())
		runErr = <-serveErr
	case runErr = <-serveErr:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// arm prepares the underlying http.Server exactly once per Server. Values
// already present on a caller-provided server win over option values.
func (s *Server) arm(handler http.Handler) (*http.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, errors.Join(ErrStart, errors.New("server already running"))
	}

	srv := s.opts.base
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = s.opts.addr
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = s.opts.readTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = s.opts.writeTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = s.opts.idleTimeout
	}
	srv.Handler = handler

	s.active = srv
	return srv, nil
}

// Shutdown drains in-flight requests within the configured drain window.
// Safe to call repeatedly and before Run; only the first call acts.
// Underlying failures come back wrapped in ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		s.mu.Lock()
		srv := s.active
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.opts.drainTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		for _, hook := range s.opts.onStop {
			hook(s.opts.log)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
