package substore

import (
	"context"
	"fmt"

	"github.com/supersub/supersub/pkg/subscription"
)

// inMemCatalog is read-only after construction.
type inMemCatalog struct {
	order  []subscription.OfferID
	offers map[subscription.OfferID]subscription.Offer
}

// NewInMemCatalog returns a catalog holding deep copies of offers, listed in the given order.
// Panics if no offers are given, if an offer is invalid or if IDs repeat.
func NewInMemCatalog(offers ...subscription.Offer) subscription.OfferCatalog {
	c, err := newInMemCatalog(offers)
	if err != nil {
		panic(err)
	}
	return c
}

func newInMemCatalog(offers []subscription.Offer) (*inMemCatalog, error) {
	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: at least one offer is required", ErrInvalidCatalog)
	}

	c := &inMemCatalog{
		order:  make([]subscription.OfferID, 0, len(offers)),
		offers: make(map[subscription.OfferID]subscription.Offer, len(offers)),
	}
	for _, o := range offers {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%w: offer %d: %w", ErrInvalidCatalog, o.ID, err)
		}
		if _, exists := c.offers[o.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateOffer, o.ID)
		}
		c.order = append(c.order, o.ID)
		c.offers[o.ID] = o.Clone()
	}
	return c, nil
}

func (c *inMemCatalog) List(context.Context) ([]subscription.Offer, error) {
	out := make([]subscription.Offer, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.offers[id].Clone())
	}
	return out, nil
}

func (c *inMemCatalog) Get(_ context.Context, id subscription.OfferID) (*subscription.Offer, error) {
	o, ok := c.offers[id]
	if !ok {
		return nil, subscription.ErrOfferNotFound
	}
	o = o.Clone()
	return &o, nil
}
