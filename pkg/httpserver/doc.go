// Package httpserver wraps net/http with graceful shutdown, functional
// options, lifecycle hooks, and probe handlers.
//
// Run blocks for the whole server lifetime: it serves until the context
// is canceled, the process receives SIGINT or SIGTERM, or the listener
// fails. On any shutdown path in-flight requests get a bounded drain
// window before the server stops. Startup failures wrap ErrStart and
// drain failures wrap ErrShutdown, both inspectable with errors.Is.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger) {
//			l.Info("listening", "addr", cfg.Addr)
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler doubles as liveness probe (no checks) and readiness
// probe (dependency check functions, typically pg.Healthcheck and
// redis.Healthcheck closures).
package httpserver
