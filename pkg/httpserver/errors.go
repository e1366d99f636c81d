package httpserver

import "errors"

var (
	// ErrStart wraps every failure to bring the server up or keep it
	// listening, including calling Run on a server that already runs.
	ErrStart = errors.New("http server failed to start")
	// ErrShutdown wraps failures to drain the server within the
	// shutdown window.
	ErrShutdown = errors.New("http server shutdown failed")
)
