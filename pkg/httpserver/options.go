package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option adjusts server construction. Options validate eagerly and panic on
// values that could only come from a programming mistake.
type Option func(*settings)

// WithAddr sets the listen address, e.g. ":8080" or "127.0.0.1:9000".
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(s *settings) { s.addr = addr }
}

// WithReadTimeout bounds reading the full request, including the body.
func WithReadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: read timeout must be positive")
	}
	return func(s *settings) { s.readTimeout = d }
}

// WithWriteTimeout bounds writing the response.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: write timeout must be positive")
	}
	return func(s *settings) { s.writeTimeout = d }
}

// WithIdleTimeout bounds how long a keep-alive connection may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: idle timeout must be positive")
	}
	return func(s *settings) { s.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight
// requests to drain.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: shutdown timeout must be positive")
	}
	return func(s *settings) { s.drainTimeout = d }
}

// WithServer runs the provided http.Server instead of a fresh one. Its
// Handler is always replaced; Addr and timeouts are filled in only where
// the caller left them zero.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: nil http.Server")
	}
	return func(s *settings) { s.base = srv }
}

// WithLogger sets the logger handed to start and stop hooks. Nil keeps
// the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithStartHook runs fn right before the listener starts accepting.
func WithStartHook(fn func(*slog.Logger)) Option {
	if fn == nil {
		panic("httpserver: nil start hook")
	}
	return func(s *settings) { s.onStart = append(s.onStart, fn) }
}

// WithStopHook runs fn after the server has drained and stopped.
func WithStopHook(fn func(*slog.Logger)) Option {
	if fn == nil {
		panic("httpserver: nil stop hook")
	}
	return func(s *settings) { s.onStop = append(s.onStop, fn) }
}
