package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/supersub/supersub/pkg/subscription"
)

type instrumentedService struct {
	next subscription.Service
	m    *Metrics
}

// InstrumentService counts every call to next by outcome and times the
// transitions.
func InstrumentService(next subscription.Service, m *Metrics) subscription.Service {
	return &instrumentedService{next: next, m: m}
}

func (s *instrumentedService) Subscribe(ctx context.Context, userID subscription.UserID, offerID subscription.OfferID) (*subscription.Outcome, error) {
	start := time.Now()
	out, err := s.next.Subscribe(ctx, userID, offerID)
	s.observeTransition(subscription.EventSubscribe.Name(), start, err)
	return out, err
}

func (s *instrumentedService) Unsubscribe(ctx context.Context, userID subscription.UserID, offerID subscription.OfferID) (*subscription.Outcome, error) {
	start := time.Now()
	out, err := s.next.Unsubscribe(ctx, userID, offerID)
	s.observeTransition(subscription.EventUnsubscribe.Name(), start, err)
	return out, err
}

func (s *instrumentedService) IsAccessible(ctx context.Context, userID subscription.UserID, offerID subscription.OfferID) (bool, error) {
	ok, err := s.next.IsAccessible(ctx, userID, offerID)
	s.m.queries.WithLabelValues("is_accessible", Result(err)).Inc()
	return ok, err
}

func (s *instrumentedService) GetRecord(ctx context.Context, userID subscription.UserID) (*subscription.Record, error) {
	rec, err := s.next.GetRecord(ctx, userID)
	s.m.queries.WithLabelValues("get_record", Result(err)).Inc()
	return rec, err
}

func (s *instrumentedService) GetOffer(ctx context.Context, offerID subscription.OfferID) (*subscription.Offer, error) {
	o, err := s.next.GetOffer(ctx, offerID)
	s.m.queries.WithLabelValues("get_offer", Result(err)).Inc()
	return o, err
}

func (s *instrumentedService) ListOffers(ctx context.Context, userID subscription.UserID) ([]subscription.OfferView, error) {
	views, err := s.next.ListOffers(ctx, userID)
	s.m.queries.WithLabelValues("list_offers", Result(err)).Inc()
	return views, err
}

func (s *instrumentedService) observeTransition(event string, start time.Time, err error) {
	s.m.transitionDuration.WithLabelValues(event).Observe(time.Since(start).Seconds())
	s.m.transitions.WithLabelValues(event, Result(err)).Inc()
}

// Result maps a service error to a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, subscription.ErrOfferNotFound):
		return "offer_not_found"
	case errors.Is(err, subscription.ErrNotAccessible):
		return "not_accessible"
	case errors.Is(err, subscription.ErrNotCurrentOffer):
		return "not_current_offer"
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		return "already_subscribed"
	case errors.Is(err, subscription.ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, subscription.ErrConcurrentUpdate):
		return "concurrent_update"
	case errors.Is(err, subscription.ErrStorageFailure):
		return "storage_failure"
	default:
		return "error"
	}
}
