package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition: from, to, or event cannot be nil")
	ErrInvalidEvent      = errors.New("invalid event: event cannot be nil")
	ErrInvalidState      = errors.New("invalid state: state cannot be nil")
	ErrGuardRejected     = errors.New("rejected by guard")
)

// ErrNoTransitionAvailable indicates no transition exists for the given state/event combination.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.StateName, e.EventName)
}

func NewErrNoTransitionAvailable(stateName, eventName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		StateName: stateName,
		EventName: eventName,
	}
}

// ErrTransitionRejected indicates all candidate transitions were vetoed by guards.
// Reason holds the error returned by the first rejecting guard.
type ErrTransitionRejected struct {
	StateName string
	EventName string
	Reason    error
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected: %v", e.StateName, e.EventName, e.Reason)
}

func (e *ErrTransitionRejected) Unwrap() error {
	return e.Reason
}

func NewErrTransitionRejected(stateName, eventName string, reason error) *ErrTransitionRejected {
	if reason == nil {
		reason = ErrGuardRejected
	}
	return &ErrTransitionRejected{
		StateName: stateName,
		EventName: eventName,
		Reason:    reason,
	}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
