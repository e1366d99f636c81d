package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/atelier/modules/inventory"
	"github.com/atelierhq/atelier/modules/platform"
	"github.com/atelierhq/atelier/pkg/audit"
	"github.com/atelierhq/atelier/pkg/authtoken"
	"github.com/atelierhq/atelier/pkg/config"
	"github.com/atelierhq/atelier/pkg/environment"
	"github.com/atelierhq/atelier/pkg/httpserver"
	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/logger"
	"github.com/atelierhq/atelier/pkg/metrics"
	"github.com/atelierhq/atelier/pkg/pg"
	"github.com/atelierhq/atelier/pkg/principal"
	"github.com/atelierhq/atelier/pkg/redis"
	"github.com/atelierhq/atelier/pkg/requestid"
	"github.com/atelierhq/atelier/pkg/session"
	"github.com/atelierhq/atelier/pkg/tenant"
)

type appConfig struct {
	Environment environment.Environment `env:"APP_ENV" envDefault:"development"`
	Service     string                  `env:"APP_SERVICE_NAME" envDefault:"atelier"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("atelier exited", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		sessCfg  session.Config
		authCfg  authtoken.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&sessCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.Service),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			principal.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
		}
	}()

	sessions := session.NewFromConfig(sessCfg,
		session.WithStore(session.NewRedisStore(redisClient)),
	)

	tokens, err := authtoken.New(authCfg)
	if err != nil {
		return err
	}

	auditLog := audit.NewLogger(audit.NewSlogStorage(log),
		audit.WithTenantIDExtractor(auditTenantID),
		audit.WithUserIDExtractor(auditUserID),
		audit.WithRequestIDExtractor(auditRequestID),
	)

	m := metrics.New(appCfg.Service)
	binder := isolation.NewPoolBinder(pool, isolation.WithBinderLogger(log))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(appCfg.Environment))
	r.Use(m.Middleware())
	r.Use(sessions.Middleware)
	r.Use(principal.Middleware(tokens, sessionPrincipal))
	r.Use(tenant.Middleware(binder, tenant.NewPgProvider(),
		tenant.WithSources(
			tenant.BearerTokenSource(tokens),
			tenant.SessionSource(),
			tenant.PrincipalSource(),
		),
		tenant.WithExemptPrefixes("/healthz", "/metrics"),
		tenant.WithAdminPrefixes("/admin"),
		tenant.WithLogger(log),
		tenant.WithMetrics(m),
	))

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Mount("/api/inventory", inventory.NewService(inventory.NewRepository(), log).Handle())
	r.Mount("/admin", platform.NewService(platform.NewRepository(), auditLog, log).Handle())

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// sessionPrincipal derives a principal from an authenticated session, so
// browser traffic without a bearer token still identifies its caller.
// Sessions carry no role; platform staff always authenticate with tokens.
func sessionPrincipal(r *http.Request) (principal.Principal, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		return principal.Principal{}, false
	}
	return principal.Principal{UserID: sess.UserID.UUID}, true
}

func auditTenantID(ctx context.Context) (string, bool) {
	if id, ok := tenant.IDFromContext(ctx); ok {
		return id.String(), true
	}
	return "", false
}

func auditUserID(ctx context.Context) (string, bool) {
	if p, ok := principal.FromContext(ctx); ok {
		return p.UserID.String(), true
	}
	return "", false
}

func auditRequestID(ctx context.Context) (string, bool) {
	id := requestid.FromContext(ctx)
	return id, id != ""
}
