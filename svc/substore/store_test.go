package substore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/subscription"
	"github.com/supersub/supersub/svc/substore"
)

func TestInMemStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing user gets empty record", func(t *testing.T) {
		t.Parallel()
		s := substore.NewInMemStore()

		r, err := s.Get(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, subscription.UserID(42), r.UserID)
		assert.False(t, r.HasCurrent())
		assert.False(t, r.HasPrevious())
		assert.Zero(t, r.Version)
	})

	t.Run("save bumps version", func(t *testing.T) {
		t.Parallel()
		s := substore.NewInMemStore()

		r := subscription.NewRecord(1)
		r.Current = subscription.OfferIDPtr(3)
		r.UpdatedAt = time.Now()
		saved, err := s.Save(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.Version)

		got, err := s.Get(ctx, 1)
		require.NoError(t, err)
		assert.True(t, got.IsCurrent(3))
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		t.Parallel()
		s := substore.NewInMemStore()

		r := subscription.NewRecord(1)
		_, err := s.Save(ctx, r)
		require.NoError(t, err)

		r.Current = subscription.OfferIDPtr(2)
		_, err = s.Save(ctx, r)
		require.ErrorIs(t, err, subscription.ErrConcurrentUpdate)

		got, _ := s.Get(ctx, 1)
		assert.False(t, got.HasCurrent())
	})

	t.Run("returned records are detached", func(t *testing.T) {
		t.Parallel()
		s := substore.NewInMemStore()

		r := subscription.NewRecord(1)
		r.Current = subscription.OfferIDPtr(2)
		_, err := s.Save(ctx, r)
		require.NoError(t, err)

		*r.Current = 9
		got, _ := s.Get(ctx, 1)
		assert.True(t, got.IsCurrent(2))
	})

	t.Run("concurrent writers: exactly one wins per version", func(t *testing.T) {
		t.Parallel()
		s := substore.NewInMemStore()

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.Save(ctx, subscription.NewRecord(5)); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}
