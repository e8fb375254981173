package subscription

import (
	"time"
)

// Record is the per-user subscription state: the offer currently held and the
// most recently held prior offer. A user with no stored record is represented
// by NewRecord, never by an error.
type Record struct {
	UserID   UserID   `json:"user_id"`
	Current  *OfferID `json:"current_offer_id"`
	Previous *OfferID `json:"previous_offer_id"`
	// Version is the optimistic concurrency token. Zero means never persisted.
	Version   int64     `json:"-"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewRecord returns the empty record of a user who never subscribed.
func NewRecord(userID UserID) Record {
	return Record{UserID: userID}
}

// HasCurrent reports whether the user currently holds an offer.
func (r Record) HasCurrent() bool {
	return r.Current != nil
}

// HasPrevious reports whether the user held an offer before.
func (r Record) HasPrevious() bool {
	return r.Previous != nil
}

// IsCurrent reports whether id is the offer the user currently holds.
func (r Record) IsCurrent(id OfferID) bool {
	return r.Current != nil && *r.Current == id
}

// Clone returns a copy that shares no pointers with r.
func (r Record) Clone() Record {
	r.Current = cloneID(r.Current)
	r.Previous = cloneID(r.Previous)
	return r
}

// Equal compares the subscription state of two records, ignoring bookkeeping fields.
func (r Record) Equal(o Record) bool {
	return r.UserID == o.UserID && sameID(r.Current, o.Current) && sameID(r.Previous, o.Previous)
}

// OfferIDPtr returns a pointer to id.
func OfferIDPtr(id OfferID) *OfferID {
	return &id
}

func cloneID(id *OfferID) *OfferID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *OfferID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
