package statemachine

import (
	"context"
	"fmt"
	"sync"
)

var _ Machine = (*Table)(nil)

// Table is a concurrency-safe transition table indexed as [from][event][]Transition.
type Table struct {
	transitions map[string]map[string][]Transition
	mu          sync.RWMutex
}

func newTable() *Table {
	return &Table{
		transitions: make(map[string]map[string][]Transition),
	}
}

func (t *Table) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	byEvent, ok := t.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		t.transitions[from.Name()] = byEvent
	}

	// Multiple transitions for the same from/event are tried in insertion order.
	byEvent[event.Name()] = append(byEvent[event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

// Fire resolves event from the given state and returns the resulting state.
// The first transition whose guards all pass wins. If every candidate is vetoed,
// the error of the first rejecting guard is returned inside ErrTransitionRejected.
func (t *Table) Fire(ctx context.Context, from State, event Event, data any) (State, error) {
	if from == nil {
		return nil, ErrInvalidState
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	candidates := t.lookup(from, event)
	if len(candidates) == 0 {
		return nil, NewErrNoTransitionAvailable(from.Name(), event.Name())
	}

	var firstReason error
	for _, tr := range candidates {
		if err := runGuards(ctx, tr, from, event, data); err != nil {
			if firstReason == nil {
				firstReason = err
			}
			continue
		}

		for _, action := range tr.Actions {
			if action == nil {
				continue
			}
			if err := action(ctx, from, tr.To, event, data); err != nil {
				return nil, fmt.Errorf("action failed: %w", err)
			}
		}
		return tr.To, nil
	}

	return nil, NewErrTransitionRejected(from.Name(), event.Name(), firstReason)
}

// CanFire reports whether Fire would find a transition whose guards pass.
// Actions are not executed.
func (t *Table) CanFire(ctx context.Context, from State, event Event, data any) bool {
	if from == nil || event == nil {
		return false
	}
	for _, tr := range t.lookup(from, event) {
		if runGuards(ctx, tr, from, event, data) == nil {
			return true
		}
	}
	return false
}

func (t *Table) lookup(from State, event Event) []Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.transitions[from.Name()][event.Name()]
}

func runGuards(ctx context.Context, tr Transition, from State, event Event, data any) error {
	for _, guard := range tr.Guards {
		if guard == nil {
			continue
		}
		if err := guard(ctx, from, event, data); err != nil {
			return err
		}
	}
	return nil
}
