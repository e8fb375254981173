// Package pg bootstraps PostgreSQL access with pgx/v5 and goose/v3.
//
//   - Config: pool and migration settings loaded from PG_* environment variables.
//   - Connect: opens a *pgxpool.Pool, retrying while the database comes up.
//   - Migrate: applies goose migrations from an fs.FS (usually embedded).
//   - Healthcheck: readiness check for pkg/httpserver.
//
// Usage:
//
//	cfg := config.MustLoad[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// The error helpers classify driver errors without importing pgconn at call sites.
package pg
