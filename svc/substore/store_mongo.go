package substore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/supersub/supersub/pkg/subscription"
)

// MongoCollection is the default collection for subscription records.
const MongoCollection = "subscription_records"

type mongoRecord struct {
	UserID    int64     `bson:"_id"`
	Current   *int64    `bson:"current_offer_id"`
	Previous  *int64    `bson:"previous_offer_id"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a RecordStore keeping one document per user, with the
// user ID as _id. Panics if db is nil.
func NewMongoStore(db *mongo.Database) subscription.RecordStore {
	if db == nil {
		panic("substore: mongo database is required")
	}
	return &mongoStore{coll: db.Collection(MongoCollection)}
}

func (s *mongoStore) Get(ctx context.Context, userID subscription.UserID) (*subscription.Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: int64(userID)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		r := subscription.NewRecord(userID)
		return &r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription record: %w", err)
	}

	return &subscription.Record{
		UserID:    userID,
		Current:   toOfferID(doc.Current),
		Previous:  toOfferID(doc.Previous),
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// Save inserts version 1 for a new user, relying on the _id uniqueness, or
// updates the document filtered by its expected version.
func (s *mongoStore) Save(ctx context.Context, record subscription.Record) (*subscription.Record, error) {
	out := record.Clone()
	out.Version = record.Version + 1
	out.UpdatedAt = record.UpdatedAt.UTC().Truncate(time.Millisecond)

	if record.Version == 0 {
		_, err := s.coll.InsertOne(ctx, mongoRecord{
			UserID:    int64(record.UserID),
			Current:   fromOfferID(record.Current),
			Previous:  fromOfferID(record.Previous),
			Version:   out.Version,
			UpdatedAt: out.UpdatedAt,
		})
		if mongo.IsDuplicateKeyError(err) {
			return nil, subscription.ErrConcurrentUpdate
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert subscription record: %w", err)
		}
		return &out, nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: int64(record.UserID)},
			{Key: "version", Value: record.Version},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "current_offer_id", Value: fromOfferID(record.Current)},
			{Key: "previous_offer_id", Value: fromOfferID(record.Previous)},
			{Key: "version", Value: out.Version},
			{Key: "updated_at", Value: out.UpdatedAt},
		}}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription record: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, subscription.ErrConcurrentUpdate
	}
	return &out, nil
}
