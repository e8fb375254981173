package substore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/supersub/supersub/pkg/subscription"
)

const (
	pgSelectRecord = `
SELECT current_offer_id, previous_offer_id, version, updated_at
FROM subscription_records
WHERE user_id = $1`

	pgInsertRecord = `
INSERT INTO subscription_records (user_id, current_offer_id, previous_offer_id, version, updated_at)
VALUES ($1, $2, $3, 1, $4)
ON CONFLICT (user_id) DO NOTHING
RETURNING version, updated_at`

	pgUpdateRecord = `
UPDATE subscription_records
SET current_offer_id = $2, previous_offer_id = $3, version = version + 1, updated_at = $4
WHERE user_id = $1 AND version = $5
RETURNING version, updated_at`
)

type pgStore struct {
	db DB
}

// NewPGStore returns a RecordStore over the subscription_records table.
// Panics if db is nil.
func NewPGStore(db DB) subscription.RecordStore {
	if db == nil {
		panic("substore: postgres connection is required")
	}
	return &pgStore{db: db}
}

func (s *pgStore) Get(ctx context.Context, userID subscription.UserID) (*subscription.Record, error) {
	var (
		current, previous *int64
		version           int64
		updatedAt         time.Time
	)
	err := s.db.QueryRow(ctx, pgSelectRecord, int64(userID)).Scan(&current, &previous, &version, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		r := subscription.NewRecord(userID)
		return &r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select subscription record: %w", err)
	}

	return &subscription.Record{
		UserID:    userID,
		Current:   toOfferID(current),
		Previous:  toOfferID(previous),
		Version:   version,
		UpdatedAt: updatedAt,
	}, nil
}

// Save inserts the first version of a record or updates it only while the
// stored version still matches. Zero rows back means another writer won.
func (s *pgStore) Save(ctx context.Context, record subscription.Record) (*subscription.Record, error) {
	var row pgx.Row
	if record.Version == 0 {
		row = s.db.QueryRow(ctx, pgInsertRecord,
			int64(record.UserID), fromOfferID(record.Current), fromOfferID(record.Previous), record.UpdatedAt)
	} else {
		row = s.db.QueryRow(ctx, pgUpdateRecord,
			int64(record.UserID), fromOfferID(record.Current), fromOfferID(record.Previous), record.UpdatedAt, record.Version)
	}

	out := record.Clone()
	if err := row.Scan(&out.Version, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("failed to save subscription record: %w", err)
	}
	return &out, nil
}

func toOfferID(v *int64) *subscription.OfferID {
	if v == nil {
		return nil
	}
	return subscription.OfferIDPtr(subscription.OfferID(*v))
}

func fromOfferID(id *subscription.OfferID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
