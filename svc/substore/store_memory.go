package substore

import (
	"context"
	"sync"

	"github.com/supersub/supersub/pkg/subscription"
)

type inMemStore struct {
	mu      sync.RWMutex
	records map[subscription.UserID]subscription.Record
}

// NewInMemStore returns an empty map-backed RecordStore.
func NewInMemStore() subscription.RecordStore {
	return &inMemStore{records: make(map[subscription.UserID]subscription.Record)}
}

func (s *inMemStore) Get(_ context.Context, userID subscription.UserID) (*subscription.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[userID]
	if !ok {
		r = subscription.NewRecord(userID)
	}
	r = r.Clone()
	return &r, nil
}

func (s *inMemStore) Save(_ context.Context, record subscription.Record) (*subscription.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[record.UserID].Version != record.Version {
		return nil, subscription.ErrConcurrentUpdate
	}
	record = record.Clone()
	record.Version++
	s.records[record.UserID] = record

	out := record.Clone()
	return &out, nil
}
