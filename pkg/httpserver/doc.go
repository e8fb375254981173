// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness checks.
//
//	srv := httpserver.New(config.MustLoad[httpserver.Config](), httpserver.WithLogger(log))
//
//	r.Get("/health/live", httpserver.Liveness())
//	r.Get("/health/ready", httpserver.Readiness(log, 2*time.Second,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return srv.Run(ctx, r)
package httpserver
