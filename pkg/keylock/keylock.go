package keylock

import (
	"context"
	"errors"
)

var (
	ErrLockTimeout = errors.New("keylock: lock was not acquired in time")
	ErrNotHeld     = errors.New("keylock: lock is no longer held")
	ErrEmptyKey    = errors.New("keylock: key must not be empty")
)

// Release gives the lock back. It is safe to call more than once;
// only the first call has an effect.
type Release func(ctx context.Context) error

// Locker provides mutual exclusion per key.
// Lock blocks until the key is free or ctx is done. In the latter case the
// returned error wraps ErrLockTimeout and the context error.
type Locker interface {
	Lock(ctx context.Context, key string) (Release, error)
}
