package substore

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/supersub/supersub/pkg/cache"
	"github.com/supersub/supersub/pkg/subscription"
)

type cachedCatalog struct {
	next   subscription.OfferCatalog
	offers *cache.LRU[subscription.OfferID, subscription.Offer]
	lists  *cache.LRU[struct{}, []subscription.Offer]
}

// NewCachedCatalog wraps next with an LRU cache of up to capacity offers, each
// kept for at most ttl. Lookups of unknown offers are not cached.
// A transition works on the snapshot returned by one Get, so a refresh that
// lands mid-transition never changes the offer it is evaluating.
func NewCachedCatalog(next subscription.OfferCatalog, capacity int, ttl time.Duration) subscription.OfferCatalog {
	if next == nil {
		panic("substore: next catalog is required")
	}
	return &cachedCatalog{
		next:   next,
		offers: cache.NewLRU[subscription.OfferID, subscription.Offer](capacity, cache.WithTTL(ttl)),
		lists:  cache.NewLRU[struct{}, []subscription.Offer](1, cache.WithTTL(ttl)),
	}
}

func (c *cachedCatalog) List(ctx context.Context) ([]subscription.Offer, error) {
	if offers, ok := c.lists.Get(struct{}{}); ok {
		return cloneOffers(offers), nil
	}

	offers, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.lists.Set(struct{}{}, cloneOffers(offers))
	for _, o := range offers {
		c.offers.Set(o.ID, o.Clone())
	}
	return offers, nil
}

func (c *cachedCatalog) Get(ctx context.Context, id subscription.OfferID) (*subscription.Offer, error) {
	if o, ok := c.offers.Get(id); ok {
		o = o.Clone()
		return &o, nil
	}

	o, err := c.next.Get(ctx, id)
	if err != nil {
		if errors.Is(err, subscription.ErrOfferNotFound) {
			return nil, subscription.ErrOfferNotFound
		}
		return nil, err
	}
	c.offers.Set(id, o.Clone())
	return o, nil
}

func cloneOffers(offers []subscription.Offer) []subscription.Offer {
	out := slices.Clone(offers)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
