package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/supersub/supersub/handler"
	subhttp "github.com/supersub/supersub/modules/subscription"
	"github.com/supersub/supersub/pkg/clientip"
	"github.com/supersub/supersub/pkg/config"
	"github.com/supersub/supersub/pkg/httpserver"
	"github.com/supersub/supersub/pkg/logger"
	"github.com/supersub/supersub/pkg/metrics"
	"github.com/supersub/supersub/pkg/ratelimiter"
	"github.com/supersub/supersub/pkg/requestid"
	"github.com/supersub/supersub/pkg/session"
	"github.com/supersub/supersub/pkg/subscription"
)

func main() {
	cfg := config.MustLoad[appConfig]()
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("supersub stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	b := &backends{log: log}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		b.close(closeCtx)
	}()

	store, err := b.store(ctx, cfg.StoreDriver)
	if err != nil {
		return err
	}
	catalog, err := b.catalog(ctx, cfg)
	if err != nil {
		return err
	}
	locker, err := b.locker(ctx, cfg.LockDriver)
	if err != nil {
		return err
	}

	bucket, err := b.limiter(ctx, cfg.LimitDriver)
	if err != nil {
		return err
	}

	errorHandler := subhttp.NewErrorHandler(log)
	renderError := func(w http.ResponseWriter, r *http.Request, err error) {
		errorHandler(handler.NewContext(w, r), err)
	}

	var throttle func(http.Handler) http.Handler
	if bucket != nil {
		throttle = ratelimiter.Middleware(bucket,
			ratelimiter.WithKeyFunc(subhttp.ThrottleKey),
			ratelimiter.WithErrorHandler(renderError),
			ratelimiter.WithLogger(log),
		)
	}

	ipResolver := clientip.New()
	if !cfg.TrustProxy {
		ipResolver = clientip.WithoutProxy()
	}

	m := metrics.New()
	svc := metrics.InstrumentService(subscription.NewService(catalog, store,
		subscription.WithLocker(locker),
		subscription.WithLockTimeout(cfg.LockTimeout),
		subscription.WithStoreTimeout(cfg.StoreTimeout),
		subscription.WithLogger(log.With(logger.Component("subscription"))),
	), m)

	sessCfg, err := config.Load[session.Config]()
	if err != nil {
		return err
	}
	openBlacklist := func(ctx context.Context, prefix string) (session.Blacklist, error) {
		client, err := b.redis(ctx)
		if err != nil {
			return nil, err
		}
		return session.NewRedisBlacklist(client, prefix), nil
	}
	auth, err := newAuthenticator(ctx, cfg, sessCfg, openBlacklist, renderError, log)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		ipResolver.Middleware,
		middleware.Recoverer,
		m.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders:   []string{requestid.Header},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(log, cfg.ReadyTimeout, b.checks...))
	r.Handle("/metrics", m.Handler())
	r.Mount("/", subhttp.Router(subhttp.RouterOptions{
		Service:      svc,
		Auth:         auth,
		ErrorHandler: errorHandler,
		Throttle:     throttle,
	}))

	log.InfoContext(ctx, "supersub configured",
		slog.String("store", cfg.StoreDriver),
		slog.String("catalog", cfg.CatalogDriver),
		slog.String("lock", cfg.LockDriver),
		slog.String("rate_limit", cfg.LimitDriver),
	)

	srv := httpserver.New(config.MustLoad[httpserver.Config](), httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// blacklistOpener connects the token blacklist.
type blacklistOpener func(ctx context.Context, prefix string) (session.Blacklist, error)

func newAuthenticator(
	ctx context.Context,
	cfg appConfig,
	sessCfg session.Config,
	openBlacklist blacklistOpener,
	renderError func(w http.ResponseWriter, r *http.Request, err error),
	log *slog.Logger,
) (subhttp.Authenticator, error) {
	if !cfg.AuthEnabled {
		log.WarnContext(ctx, "authentication disabled, trusting X-User-ID header")
		return trustedHeaderAuth{onError: renderError}, nil
	}

	verifier, err := session.NewVerifier(sessCfg)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLogger(log),
		session.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			renderError(w, r, errors.Join(subscription.ErrNotAuthenticated, err))
		}),
	}
	if sessCfg.BlacklistEnabled {
		blacklist, err := openBlacklist(ctx, sessCfg.BlacklistPrefix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithBlacklist(blacklist))
	} else {
		log.WarnContext(ctx, "token blacklist disabled, revoked tokens stay valid until expiry")
	}
	return session.NewAuthenticator(verifier, sessCfg, opts...), nil
}
