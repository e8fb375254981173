// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// The client backs the distributed per-user lock (pkg/keylock) and the
// revoked-token blacklist (pkg/session):
//
//	client, err := redis.Connect(ctx, config.MustLoad[redis.Config]())
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	locker := keylock.NewRedis(client)
//
// Healthcheck adapts the client to pkg/httpserver readiness checks.
package redis
