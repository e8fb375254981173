package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/supersub/supersub/internal/db/migrations"
	"github.com/supersub/supersub/pkg/config"
	"github.com/supersub/supersub/pkg/httpserver"
	"github.com/supersub/supersub/pkg/keylock"
	"github.com/supersub/supersub/pkg/logger"
	mongoconn "github.com/supersub/supersub/pkg/mongo"
	"github.com/supersub/supersub/pkg/pg"
	"github.com/supersub/supersub/pkg/ratelimiter"
	redisconn "github.com/supersub/supersub/pkg/redis"
	"github.com/supersub/supersub/pkg/subscription"
	"github.com/supersub/supersub/svc/substore"
)

var errUnknownDriver = errors.New("unknown driver")

// backends holds lazily opened connections shared by the store, catalog,
// locker and session blacklist.
type backends struct {
	log *slog.Logger

	pool  *pgxpool.Pool
	rdb   *goredis.Client
	mongo *mongo.Database

	checks  []httpserver.Check
	closers []func(context.Context) error
}

func (b *backends) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if b.pool != nil {
		return b.pool, nil
	}
	cfg, err := config.Load[pg.Config]()
	if err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := pg.Migrate(ctx, pool, migrations.FS, cfg, b.log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	b.pool = pool
	b.checks = append(b.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	b.closers = append(b.closers, func(context.Context) error { pool.Close(); return nil })
	return pool, nil
}

func (b *backends) redis(ctx context.Context) (*goredis.Client, error) {
	if b.rdb != nil {
		return b.rdb, nil
	}
	cfg, err := config.Load[redisconn.Config]()
	if err != nil {
		return nil, err
	}
	client, err := redisconn.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.rdb = client
	b.checks = append(b.checks, httpserver.Check{Name: "redis", Fn: redisconn.Healthcheck(client)})
	b.closers = append(b.closers, func(context.Context) error { return client.Close() })
	return client, nil
}

func (b *backends) mongoDB(ctx context.Context) (*mongo.Database, error) {
	if b.mongo != nil {
		return b.mongo, nil
	}
	cfg, err := config.Load[mongoconn.Config]()
	if err != nil {
		return nil, err
	}
	db, err := mongoconn.NewDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.mongo = db
	b.checks = append(b.checks, httpserver.Check{Name: "mongo", Fn: mongoconn.Healthcheck(db.Client())})
	b.closers = append(b.closers, db.Client().Disconnect)
	return db, nil
}

func (b *backends) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			b.log.WarnContext(ctx, "failed to close backend", logger.Error(err))
		}
	}
}

func (b *backends) store(ctx context.Context, driver string) (subscription.RecordStore, error) {
	switch driver {
	case driverMemory:
		return substore.NewInMemStore(), nil
	case driverPostgres:
		pool, err := b.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return substore.NewPGStore(pool), nil
	case driverMongo:
		db, err := b.mongoDB(ctx)
		if err != nil {
			return nil, err
		}
		return substore.NewMongoStore(db), nil
	}
	return nil, fmt.Errorf("%w: STORE_DRIVER=%q", errUnknownDriver, driver)
}

func (b *backends) catalog(ctx context.Context, cfg appConfig) (subscription.OfferCatalog, error) {
	var (
		catalog subscription.OfferCatalog
		err     error
	)
	switch cfg.CatalogDriver {
	case driverMemory:
		catalog = substore.NewInMemCatalog(substore.DefaultOffers()...)
	case driverYAML:
		catalog, err = substore.LoadYAMLCatalog(cfg.CatalogFile)
	case driverPostgres:
		var pool *pgxpool.Pool
		if pool, err = b.postgres(ctx); err == nil {
			catalog = substore.NewPGCatalog(pool)
		}
	default:
		err = fmt.Errorf("%w: CATALOG_DRIVER=%q", errUnknownDriver, cfg.CatalogDriver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CatalogCacheTTL > 0 && cfg.CatalogDriver != driverMemory {
		catalog = substore.NewCachedCatalog(catalog, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	}
	return catalog, nil
}

func (b *backends) locker(ctx context.Context, driver string) (keylock.Locker, error) {
	switch driver {
	case driverMemory:
		return keylock.NewMemory(), nil
	case driverRedis:
		client, err := b.redis(ctx)
		if err != nil {
			return nil, err
		}
		return keylock.NewRedis(client, keylock.WithKeyPrefix("supersub:lock:")), nil
	}
	return nil, fmt.Errorf("%w: LOCK_DRIVER=%q", errUnknownDriver, driver)
}

// limiter returns nil when rate limiting is disabled.
func (b *backends) limiter(ctx context.Context, driver string) (*ratelimiter.Bucket, error) {
	var store ratelimiter.Store
	switch driver {
	case driverNone:
		return nil, nil
	case driverMemory:
		ms := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Minute))
		b.closers = append(b.closers, func(context.Context) error { ms.Close(); return nil })
		store = ms
	case driverRedis:
		client, err := b.redis(ctx)
		if err != nil {
			return nil, err
		}
		store = ratelimiter.NewRedisStore(client, ratelimiter.WithRedisPrefix("supersub:ratelimit:"))
	default:
		return nil, fmt.Errorf("%w: RATE_LIMIT_DRIVER=%q", errUnknownDriver, driver)
	}

	cfg, err := config.Load[ratelimiter.Config]()
	if err != nil {
		return nil, err
	}
	return ratelimiter.NewBucket(store, cfg)
}
