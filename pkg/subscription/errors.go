package subscription

import "errors"

var (
	ErrOfferNotFound     = errors.New("offer not found")
	ErrInvalidOffer      = errors.New("invalid offer definition")
	ErrNotAccessible     = errors.New("offer is not accessible under its access rules")
	ErrNotCurrentOffer   = errors.New("user is not currently subscribed to this offer")
	ErrAlreadySubscribed = errors.New("user is already subscribed to this offer")
	ErrNotAuthenticated  = errors.New("user is not authenticated")

	ErrStorageFailure   = errors.New("subscription storage failure")
	ErrConcurrentUpdate = errors.New("subscription record was modified concurrently")

	ErrUserIDNotInContext = errors.New("user ID not found in context")
)

// IsRetryable reports whether err is transient. Only storage failures are;
// every other kind is deterministic for the same inputs.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}
