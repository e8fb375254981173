package keylock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/keylock"
)

func TestMemory_Lock(t *testing.T) {
	t.Parallel()

	t.Run("serializes same key", func(t *testing.T) {
		t.Parallel()
		locker := keylock.NewMemory()

		var (
			inside  atomic.Int32
			maxSeen atomic.Int32
			wg      sync.WaitGroup
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := locker.Lock(context.Background(), "user:1")
				if !assert.NoError(t, err) {
					return
				}
				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				assert.NoError(t, release(context.Background()))
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxSeen.Load())
		assert.Equal(t, 0, locker.Len())
	})

	t.Run("different keys do not block", func(t *testing.T) {
		t.Parallel()
		locker := keylock.NewMemory()

		releaseA, err := locker.Lock(context.Background(), "user:1")
		require.NoError(t, err)
		defer releaseA(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		releaseB, err := locker.Lock(ctx, "user:2")
		require.NoError(t, err)
		require.NoError(t, releaseB(context.Background()))
	})

	t.Run("times out while held", func(t *testing.T) {
		t.Parallel()
		locker := keylock.NewMemory()

		release, err := locker.Lock(context.Background(), "user:1")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(ctx, "user:1")
		require.ErrorIs(t, err, keylock.ErrLockTimeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		require.NoError(t, release(context.Background()))
		assert.Equal(t, 0, locker.Len())
	})

	t.Run("release is idempotent", func(t *testing.T) {
		t.Parallel()
		locker := keylock.NewMemory()

		release, err := locker.Lock(context.Background(), "k")
		require.NoError(t, err)
		require.NoError(t, release(context.Background()))
		require.NoError(t, release(context.Background()))

		release, err = locker.Lock(context.Background(), "k")
		require.NoError(t, err)
		require.NoError(t, release(context.Background()))
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		_, err := keylock.NewMemory().Lock(context.Background(), "")
		assert.ErrorIs(t, err, keylock.ErrEmptyKey)
	})
}

func TestNewRedis_PanicsOnNilClient(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		keylock.NewRedis(nil)
	})
}
