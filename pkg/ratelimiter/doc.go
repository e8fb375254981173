// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis stores, plus an HTTP middleware.
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.WithKeyFunc(byUser)))
//
// Each request consumes one token. Buckets refill RefillRate tokens every
// RefillInterval, up to Capacity. Denied requests get 429 with Retry-After.
package ratelimiter
