package statemachine

import (
	"context"
)

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Action executes side effects during a transition. Returning an error aborts it.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard decides whether a transition may proceed. A nil error allows it;
// a non-nil error vetoes it and is carried by ErrTransitionRejected.
type Guard func(ctx context.Context, from State, event Event, data any) error

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // All must pass for transition to proceed
	Actions []Action // Executed in order once guards pass
}

// Machine evaluates events against a transition table.
// It holds no current state: callers pass the state they loaded and
// persist whatever Fire returns.
type Machine interface {
	AddTransition(from, to State, event Event, guards []Guard, actions []Action) error
	Fire(ctx context.Context, from State, event Event, data any) (State, error)
	CanFire(ctx context.Context, from State, event Event, data any) bool
}

// StringState provides a simple string-based state implementation.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
