package subscription

import (
	"log/slog"
	"time"

	"github.com/supersub/supersub/pkg/keylock"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithLocker sets the per-user locker. Defaults to an in-process keylock.Memory,
// which is only correct when a single instance serves a given user.
func WithLocker(locker keylock.Locker) ServiceOption {
	return func(s *service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithLockTimeout bounds how long a transition waits for the per-user lock.
// Default is 5s.
func WithLockTimeout(d time.Duration) ServiceOption {
	return func(s *service) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithStoreTimeout bounds catalog and store I/O once the lock is held.
// Default is 10s.
func WithStoreTimeout(d time.Duration) ServiceOption {
	return func(s *service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithLogger sets the logger used for transition outcomes.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for Record.UpdatedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}
