package subscription

import (
	"context"
)

// RecordStore persists one Record per user, keyed by UserID.
type RecordStore interface {
	// Get returns the user's record, or NewRecord(userID) if none was stored.
	Get(ctx context.Context, userID UserID) (*Record, error)

	// Save writes the record if the stored version still equals record.Version
	// and returns the stored copy with the incremented version.
	// Returns ErrConcurrentUpdate when the version no longer matches.
	Save(ctx context.Context, record Record) (*Record, error)
}

// OfferCatalog is the read-only source of offers.
type OfferCatalog interface {
	// List returns all offers in display order.
	List(ctx context.Context) ([]Offer, error)

	// Get returns the offer or ErrOfferNotFound.
	Get(ctx context.Context, id OfferID) (*Offer, error)
}
