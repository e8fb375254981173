// Package statemachine provides a table-driven finite-state-machine for
// entities whose state lives outside the process, typically in a database row.
//
// A Table holds no current state. Callers load the entity, derive its State,
// call Fire with the event and the event payload, and persist the result.
// This keeps the table shareable across goroutines and requests while the
// caller stays in charge of atomicity (locks, compare-and-swap writes).
//
// The table handles:
//  1. Transition lookup by (from state, event)
//  2. Guard evaluation, where a guard vetoes a transition by returning an error
//  3. Execution of Actions once every guard of a transition has passed
//
// # Usage
//
//	const (
//	    Draft    = statemachine.StringState("draft")
//	    InReview = statemachine.StringState("in_review")
//	    Submit   = statemachine.StringEvent("submit")
//	)
//
//	table := statemachine.MustNew(
//	    statemachine.WithTransition(Draft, InReview, Submit),
//	)
//
//	next, err := table.Fire(ctx, Draft, Submit, nil)
//
// # Guards and Actions
//
// Guards return nil to allow a transition. The error of the first vetoing
// guard is kept as the Reason of ErrTransitionRejected and is reachable with
// errors.Is / errors.As:
//
//	isOwner := func(ctx context.Context, from statemachine.State, evt statemachine.Event, data any) error {
//	    if data.(*Doc).OwnerID != userID {
//	        return ErrForbidden
//	    }
//	    return nil
//	}
//
// Actions run in order after the guards pass. A failing action aborts the
// transition and Fire returns no state.
//
// # Error Handling
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* event not valid in this state */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* a guard said no */ }
package statemachine
