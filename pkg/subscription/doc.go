// Package subscription decides and applies offer subscription transitions.
//
// A user holds at most one offer at a time. Each user has a Record with the
// offer currently held and the most recently held prior offer. Offers carry
// access rules (FIRST_SUB, RENEW_SUB, SWITCH_SUB) that gate who may subscribe:
//
//   - FIRST_SUB: the user never held an offer.
//   - RENEW_SUB: the user holds nothing now but held something before.
//   - SWITCH_SUB: the user holds a different offer.
//
// An offer without rules is open to everyone; several rules combine with OR.
//
// # Architecture
//
//   - IsAccessible: pure eligibility evaluator.
//   - Machine: subscribe/unsubscribe transition table built on pkg/statemachine.
//   - Service: runs each transition as a per-user critical section.
//   - OfferCatalog, RecordStore: read-only offer source and record persistence.
//
// Service acquires a per-user lock (pkg/keylock), loads the offer and the
// record concurrently, lets the Machine compute the next record, and saves
// it with a compare-and-swap on Record.Version. Any rejection leaves the
// stored record untouched.
//
// # Usage
//
//	svc := subscription.NewService(catalog, store,
//		subscription.WithLocker(keylock.NewRedis(redisClient)),
//		subscription.WithLogger(log),
//	)
//
//	out, err := svc.Subscribe(ctx, userID, offerID)
//	switch {
//	case errors.Is(err, subscription.ErrOfferNotFound):
//	case errors.Is(err, subscription.ErrNotAccessible):
//	case subscription.IsRetryable(err):
//	}
//
// # Errors
//
// ErrOfferNotFound, ErrNotAccessible, ErrNotCurrentOffer, ErrAlreadySubscribed
// and ErrNotAuthenticated are deterministic. ErrStorageFailure wraps lock,
// catalog and store failures and is the only retryable kind.
package subscription
