package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supersub/supersub/pkg/keylock"
	"github.com/supersub/supersub/pkg/logger"
)

// Service decides and applies subscription transitions.
type Service interface {
	// Transitions
	Subscribe(ctx context.Context, userID UserID, offerID OfferID) (*Outcome, error)
	Unsubscribe(ctx context.Context, userID UserID, offerID OfferID) (*Outcome, error)

	// Read-only queries
	IsAccessible(ctx context.Context, userID UserID, offerID OfferID) (bool, error)
	GetRecord(ctx context.Context, userID UserID) (*Record, error)
	GetOffer(ctx context.Context, offerID OfferID) (*Offer, error)
	ListOffers(ctx context.Context, userID UserID) ([]OfferView, error)
}

type service struct {
	catalog      OfferCatalog
	store        RecordStore
	locker       keylock.Locker
	machine      *Machine
	logger       *slog.Logger
	lockTimeout  time.Duration
	storeTimeout time.Duration
	now          func() time.Time
}

// NewService creates a Service. Panics if catalog or store is nil.
func NewService(catalog OfferCatalog, store RecordStore, opts ...ServiceOption) Service {
	if catalog == nil {
		panic("subscription: OfferCatalog is required")
	}
	if store == nil {
		panic("subscription: RecordStore is required")
	}

	s := &service{
		catalog:      catalog,
		store:        store,
		locker:       keylock.NewMemory(),
		machine:      NewMachine(),
		logger:       slog.New(slog.DiscardHandler),
		lockTimeout:  5 * time.Second,
		storeTimeout: 10 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Subscribe(ctx context.Context, userID UserID, offerID OfferID) (*Outcome, error) {
	return s.transition(ctx, userID, offerID, EventSubscribe.Name(), s.machine.Subscribe)
}

func (s *service) Unsubscribe(ctx context.Context, userID UserID, offerID OfferID) (*Outcome, error) {
	return s.transition(ctx, userID, offerID, EventUnsubscribe.Name(), s.machine.Unsubscribe)
}

type decideFunc func(ctx context.Context, record Record, offer Offer) (Record, error)

// transition runs one subscribe or unsubscribe as a critical section for userID.
// Once the lock is held the work is detached from ctx cancellation, so a
// transition either persists fully or leaves the stored record untouched.
func (s *service) transition(ctx context.Context, userID UserID, offerID OfferID, event string, decide decideFunc) (*Outcome, error) {
	if userID <= 0 {
		return nil, ErrNotAuthenticated
	}
	if offerID <= 0 {
		return nil, ErrOfferNotFound
	}

	log := s.logger.With(logger.Event(event), logger.UserID(userID), logger.OfferID(offerID))

	lockCtx, cancelLock := context.WithTimeout(ctx, s.lockTimeout)
	release, err := s.locker.Lock(lockCtx, lockKey(userID))
	cancelLock()
	if err != nil {
		log.WarnContext(ctx, "failed to acquire subscription lock", logger.Error(err))
		return nil, errors.Join(ErrStorageFailure, err)
	}

	detached := context.WithoutCancel(ctx)
	defer func() {
		if err := release(detached); err != nil {
			log.WarnContext(detached, "failed to release subscription lock", logger.Error(err))
		}
	}()

	opCtx, cancelOp := context.WithTimeout(detached, s.storeTimeout)
	defer cancelOp()

	offer, record, err := s.load(opCtx, userID, offerID)
	if err != nil {
		return nil, err
	}

	next, err := decide(opCtx, *record, *offer)
	if err != nil {
		log.InfoContext(opCtx, "subscription transition rejected", logger.Error(err))
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()

	saved, err := s.store.Save(opCtx, next)
	if err != nil {
		log.ErrorContext(opCtx, "failed to persist subscription record", logger.Error(err))
		return nil, errors.Join(ErrStorageFailure, err)
	}

	log.InfoContext(opCtx, "subscription transition applied",
		logger.Transition(optionalID(record.Current), optionalID(saved.Current)),
		logger.PreviousOfferID(optionalID(saved.Previous)),
	)

	return &Outcome{Record: saved.Clone(), Offer: offer.Clone()}, nil
}

// load reads the offer and the record concurrently. Both reads complete before
// any decision; an unknown offer takes precedence over a store error.
func (s *service) load(ctx context.Context, userID UserID, offerID OfferID) (*Offer, *Record, error) {
	var (
		offer            *Offer
		record           *Record
		offerErr, recErr error
		g                errgroup.Group
	)
	g.Go(func() error {
		offer, offerErr = s.catalog.Get(ctx, offerID)
		return nil
	})
	g.Go(func() error {
		record, recErr = s.store.Get(ctx, userID)
		return nil
	})
	_ = g.Wait()

	if err := s.catalogError(offerErr); err != nil {
		return nil, nil, err
	}
	if recErr != nil {
		return nil, nil, errors.Join(ErrStorageFailure, fmt.Errorf("failed to load subscription record: %w", recErr))
	}
	return offer, record, nil
}

func (s *service) catalogError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrOfferNotFound):
		return ErrOfferNotFound
	default:
		return errors.Join(ErrStorageFailure, fmt.Errorf("failed to fetch offer: %w", err))
	}
}

// IsAccessible evaluates the offer's access rules only. See OfferView for the
// currently held offer.
func (s *service) IsAccessible(ctx context.Context, userID UserID, offerID OfferID) (bool, error) {
	if userID <= 0 {
		return false, ErrNotAuthenticated
	}
	if offerID <= 0 {
		return false, ErrOfferNotFound
	}

	offer, record, err := s.load(ctx, userID, offerID)
	if err != nil {
		return false, err
	}
	return IsAccessible(*offer, *record), nil
}

func (s *service) GetRecord(ctx context.Context, userID UserID) (*Record, error) {
	if userID <= 0 {
		return nil, ErrNotAuthenticated
	}
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, fmt.Errorf("failed to load subscription record: %w", err))
	}
	return record, nil
}

func (s *service) GetOffer(ctx context.Context, offerID OfferID) (*Offer, error) {
	if offerID <= 0 {
		return nil, ErrOfferNotFound
	}
	offer, err := s.catalog.Get(ctx, offerID)
	if err := s.catalogError(err); err != nil {
		return nil, err
	}
	return offer, nil
}

// ListOffers returns the catalog with eligibility flags for userID.
// Pass a non-positive userID for an anonymous listing without flags.
func (s *service) ListOffers(ctx context.Context, userID UserID) ([]OfferView, error) {
	var (
		offers  []Offer
		record  *Record
		listErr error
		recErr  error
		g       errgroup.Group
	)
	g.Go(func() error {
		offers, listErr = s.catalog.List(ctx)
		return nil
	})
	if userID > 0 {
		g.Go(func() error {
			record, recErr = s.store.Get(ctx, userID)
			return nil
		})
	}
	_ = g.Wait()

	if listErr != nil {
		return nil, errors.Join(ErrStorageFailure, fmt.Errorf("failed to list offers: %w", listErr))
	}
	if recErr != nil {
		return nil, errors.Join(ErrStorageFailure, fmt.Errorf("failed to load subscription record: %w", recErr))
	}

	views := make([]OfferView, 0, len(offers))
	for _, o := range offers {
		view := OfferView{Offer: o}
		if record != nil {
			ok := IsAccessible(o, *record)
			view.Accessible = &ok
		}
		views = append(views, view)
	}
	return views, nil
}

func lockKey(userID UserID) string {
	return "subscription:user:" + strconv.FormatInt(int64(userID), 10)
}

func optionalID(id *OfferID) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}
