package subscription

import (
	"context"
	"errors"

	"github.com/supersub/supersub/pkg/statemachine"
)

const (
	StateNone   = statemachine.StringState("none")
	StateActive = statemachine.StringState("active")

	EventSubscribe   = statemachine.StringEvent("subscribe")
	EventUnsubscribe = statemachine.StringEvent("unsubscribe")
)

// StateOf derives the machine state from a record.
func StateOf(r Record) statemachine.State {
	if r.HasCurrent() {
		return StateActive
	}
	return StateNone
}

// transitionData is the payload passed through guards and actions.
// Actions write the resulting record into next.
type transitionData struct {
	offer Offer
	next  Record
}

// Machine decides subscribe/unsubscribe transitions for a single record.
// It is stateless and safe for concurrent use; persistence is up to the caller.
type Machine struct {
	table statemachine.Machine
}

// NewMachine builds the subscription transition table.
func NewMachine() *Machine {
	subscribe := []statemachine.TransitionOption{
		statemachine.WithGuards(guardNotAlreadyCurrent, guardAccessible),
		statemachine.WithAction(applySubscribe),
	}
	return &Machine{
		table: statemachine.MustNew(
			statemachine.WithTransition(StateNone, StateActive, EventSubscribe, subscribe...),
			statemachine.WithTransition(StateActive, StateActive, EventSubscribe, subscribe...),
			statemachine.WithTransition(StateActive, StateNone, EventUnsubscribe,
				statemachine.WithGuard(guardHoldsOffer),
				statemachine.WithAction(applyUnsubscribe),
			),
		),
	}
}

// Subscribe returns the record resulting from subscribing to offer.
// The input record is never modified.
func (m *Machine) Subscribe(ctx context.Context, record Record, offer Offer) (Record, error) {
	return m.fire(ctx, record, EventSubscribe, offer)
}

// Unsubscribe returns the record resulting from leaving offer.
// The input record is never modified.
func (m *Machine) Unsubscribe(ctx context.Context, record Record, offer Offer) (Record, error) {
	return m.fire(ctx, record, EventUnsubscribe, offer)
}

// CanSubscribe reports whether Subscribe would succeed, without side effects.
func (m *Machine) CanSubscribe(ctx context.Context, record Record, offer Offer) bool {
	return m.table.CanFire(ctx, StateOf(record), EventSubscribe, &transitionData{offer: offer, next: record.Clone()})
}

func (m *Machine) fire(ctx context.Context, record Record, event statemachine.Event, offer Offer) (Record, error) {
	data := &transitionData{offer: offer, next: record.Clone()}

	if _, err := m.table.Fire(ctx, StateOf(record), event, data); err != nil {
		return record, classifyTransitionError(event, err)
	}
	return data.next, nil
}

func classifyTransitionError(event statemachine.Event, err error) error {
	var rejected *statemachine.ErrTransitionRejected
	switch {
	case errors.As(err, &rejected):
		return rejected.Reason
	case statemachine.IsNoTransitionAvailableError(err) && event == EventUnsubscribe:
		// Nothing is held, so the target cannot be the current offer.
		return ErrNotCurrentOffer
	default:
		return err
	}
}

func guardNotAlreadyCurrent(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) error {
	d := data.(*transitionData)
	if d.next.IsCurrent(d.offer.ID) {
		return ErrAlreadySubscribed
	}
	return nil
}

func guardAccessible(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) error {
	d := data.(*transitionData)
	if !IsAccessible(d.offer, d.next) {
		return ErrNotAccessible
	}
	return nil
}

func guardHoldsOffer(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) error {
	d := data.(*transitionData)
	if !d.next.IsCurrent(d.offer.ID) {
		return ErrNotCurrentOffer
	}
	return nil
}

func applySubscribe(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	d := data.(*transitionData)
	// A user with nothing held keeps their previous pointer.
	if d.next.HasCurrent() {
		d.next.Previous = d.next.Current
	}
	d.next.Current = OfferIDPtr(d.offer.ID)
	return nil
}

func applyUnsubscribe(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	d := data.(*transitionData)
	d.next.Previous = d.next.Current
	d.next.Current = nil
	return nil
}
