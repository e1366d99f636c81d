package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atelierhq/atelier/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes with one
// handler. With no checks it is a liveness probe and always answers
// 200 "ALIVE". With checks it is a readiness probe: every check must
// pass for 200 "READY", and the first failure answers 500 "NOT_READY"
// after logging the cause.
func HealthCheckHandler(ctx context.Context, log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
