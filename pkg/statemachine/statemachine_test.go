package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/statemachine"
)

const (
	draft     = statemachine.StringState("draft")
	inReview  = statemachine.StringState("in_review")
	approved  = statemachine.StringState("approved")
	published = statemachine.StringState("published")

	submit  = statemachine.StringEvent("submit")
	approve = statemachine.StringEvent("approve")
	publish = statemachine.StringEvent("publish")
)

func TestTable_Fire(t *testing.T) {
	t.Parallel()

	t.Run("follows defined transitions", func(t *testing.T) {
		t.Parallel()
		table := statemachine.MustNew(
			statemachine.WithTransition(draft, inReview, submit),
			statemachine.WithTransition(inReview, approved, approve),
		)
		ctx := context.Background()

		next, err := table.Fire(ctx, draft, submit, nil)
		require.NoError(t, err)
		assert.Equal(t, inReview, next)

		next, err = table.Fire(ctx, next, approve, nil)
		require.NoError(t, err)
		assert.Equal(t, approved, next)
	})

	t.Run("undefined event", func(t *testing.T) {
		t.Parallel()
		table := statemachine.MustNew(
			statemachine.WithTransition(draft, inReview, submit),
		)

		next, err := table.Fire(context.Background(), draft, publish, nil)
		require.Error(t, err)
		assert.Nil(t, next)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.False(t, statemachine.IsTransitionRejectedError(err))
	})

	t.Run("nil arguments", func(t *testing.T) {
		t.Parallel()
		table := statemachine.MustNew()

		_, err := table.Fire(context.Background(), nil, submit, nil)
		assert.ErrorIs(t, err, statemachine.ErrInvalidState)

		_, err = table.Fire(context.Background(), draft, nil, nil)
		assert.ErrorIs(t, err, statemachine.ErrInvalidEvent)
	})

	t.Run("guard reason is preserved", func(t *testing.T) {
		t.Parallel()
		errNotOwner := errors.New("not owner")
		table := statemachine.MustNew(
			statemachine.WithTransition(draft, inReview, submit,
				statemachine.WithGuard(func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) error {
					if data != "owner" {
						return errNotOwner
					}
					return nil
				}),
			),
		)

		_, err := table.Fire(context.Background(), draft, submit, "guest")
		require.Error(t, err)
		assert.True(t, statemachine.IsTransitionRejectedError(err))
		assert.ErrorIs(t, err, errNotOwner)

		next, err := table.Fire(context.Background(), draft, submit, "owner")
		require.NoError(t, err)
		assert.Equal(t, inReview, next)
	})

	t.Run("first passing transition wins", func(t *testing.T) {
		t.Parallel()
		deny := func(context.Context, statemachine.State, statemachine.Event, any) error {
			return errors.New("denied")
		}
		table := statemachine.MustNew(
			statemachine.WithTransition(inReview, published, approve, statemachine.WithGuard(deny)),
			statemachine.WithTransition(inReview, approved, approve),
		)

		next, err := table.Fire(context.Background(), inReview, approve, nil)
		require.NoError(t, err)
		assert.Equal(t, approved, next)
	})

	t.Run("actions run in order and failures abort", func(t *testing.T) {
		t.Parallel()
		var calls []string
		record := func(name string) statemachine.Action {
			return func(_ context.Context, from, to statemachine.State, _ statemachine.Event, _ any) error {
				calls = append(calls, name+":"+from.Name()+"->"+to.Name())
				return nil
			}
		}
		errBoom := errors.New("boom")
		table := statemachine.MustNew(
			statemachine.WithTransition(draft, inReview, submit,
				statemachine.WithActions(record("a"), record("b")),
			),
			statemachine.WithTransition(inReview, approved, approve,
				statemachine.WithAction(func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
					return errBoom
				}),
			),
		)

		next, err := table.Fire(context.Background(), draft, submit, nil)
		require.NoError(t, err)
		assert.Equal(t, inReview, next)
		assert.Equal(t, []string{"a:draft->in_review", "b:draft->in_review"}, calls)

		next, err = table.Fire(context.Background(), inReview, approve, nil)
		require.ErrorIs(t, err, errBoom)
		assert.Nil(t, next)
	})
}

func TestTable_CanFire(t *testing.T) {
	t.Parallel()

	actionCalled := false
	table := statemachine.MustNew(
		statemachine.WithTransition(draft, inReview, submit,
			statemachine.WithGuards(func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) error {
				if data == nil {
					return statemachine.ErrGuardRejected
				}
				return nil
			}),
			statemachine.WithAction(func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
				actionCalled = true
				return nil
			}),
		),
	)
	ctx := context.Background()

	assert.True(t, table.CanFire(ctx, draft, submit, "payload"))
	assert.False(t, table.CanFire(ctx, draft, submit, nil))
	assert.False(t, table.CanFire(ctx, inReview, submit, "payload"))
	assert.False(t, table.CanFire(ctx, nil, submit, "payload"))
	assert.False(t, actionCalled)
}

func TestWithTransitions(t *testing.T) {
	t.Parallel()

	t.Run("adds all definitions", func(t *testing.T) {
		t.Parallel()
		table, err := statemachine.New(statemachine.WithTransitions([]statemachine.TransitionDef{
			{From: draft, To: inReview, Event: submit},
			{From: inReview, To: approved, Event: approve},
		}))
		require.NoError(t, err)
		assert.True(t, table.CanFire(context.Background(), inReview, approve, nil))
	})

	t.Run("reports invalid definition", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.New(statemachine.WithTransitions([]statemachine.TransitionDef{
			{From: draft, To: nil, Event: submit},
		}))
		require.ErrorIs(t, err, statemachine.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "draft-><nil>")
	})

	t.Run("MustNew panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			statemachine.MustNew(statemachine.WithTransition(nil, draft, submit))
		})
	})
}

func TestTable_ConcurrentFire(t *testing.T) {
	t.Parallel()

	table := statemachine.MustNew(
		statemachine.WithTransition(draft, inReview, submit),
	)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := table.Fire(context.Background(), draft, submit, nil)
			assert.NoError(t, err)
			assert.Equal(t, inReview, next)
		}()
	}
	wg.Wait()
}
