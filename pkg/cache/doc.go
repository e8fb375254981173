// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	offers := cache.NewLRU[subscription.OfferID, subscription.Offer](256,
//		cache.WithTTL(time.Minute),
//	)
//	offers.Set(id, offer)
//	if o, ok := offers.Get(id); ok {
//		// fresh hit
//	}
//
// Capacity bounds memory; the TTL bounds staleness. Expired entries are
// removed lazily by Get, so Len may count entries that are already stale.
package cache
