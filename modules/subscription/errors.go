package subscription

import (
	"errors"
	"log/slog"

	"github.com/supersub/supersub/handler"
	"github.com/supersub/supersub/pkg/ratelimiter"
	"github.com/supersub/supersub/pkg/subscription"
)

// ErrorMapper translates subscription and throttling errors into HTTP errors.
// Storage failures map to 503 since callers may retry them.
func ErrorMapper(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, subscription.ErrNotAuthenticated):
		return handler.ErrUnauthorized.WithMessage("Could not validate credentials"), true
	case errors.Is(err, subscription.ErrOfferNotFound):
		return handler.ErrNotFound.WithMessage("Offer not found"), true
	case errors.Is(err, subscription.ErrNotAccessible):
		return handler.ErrForbidden.WithMessage("You do not have access to this offer based on the current access rules"), true
	case errors.Is(err, subscription.ErrNotCurrentOffer):
		return handler.ErrBadRequest.WithMessage("You are not currently subscribed to this offer"), true
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		return handler.ErrConflict.WithMessage("User is already subscribed to this offer"), true
	case errors.Is(err, ratelimiter.ErrRateLimited):
		return handler.ErrTooManyRequests.WithMessage("Too many requests"), true
	case errors.Is(err, subscription.ErrStorageFailure):
		return handler.ErrServiceUnavailable.WithMessage("Subscription service temporarily unavailable"), true
	}
	return handler.HTTPError{}, false
}

// NewErrorHandler is handler.NewErrorHandler with ErrorMapper installed.
func NewErrorHandler(log *slog.Logger) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, ErrorMapper)
}
