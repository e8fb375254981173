package subscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/subscription"
)

func TestMachine_Subscribe(t *testing.T) {
	t.Parallel()
	m := subscription.NewMachine()
	ctx := context.Background()

	t.Run("from none keeps previous", func(t *testing.T) {
		t.Parallel()
		next, err := m.Subscribe(ctx, rec(0, 2), offer(3, subscription.RuleRenewSub))
		require.NoError(t, err)
		assert.True(t, next.Equal(rec(3, 2)))
	})

	t.Run("from active moves current to previous", func(t *testing.T) {
		t.Parallel()
		next, err := m.Subscribe(ctx, rec(1, 0), offer(2, subscription.RuleSwitchSub))
		require.NoError(t, err)
		assert.True(t, next.Equal(rec(2, 1)))
	})

	t.Run("ineligible", func(t *testing.T) {
		t.Parallel()
		in := rec(1, 0)
		out, err := m.Subscribe(ctx, in, offer(2, subscription.RuleFirstSub))
		require.ErrorIs(t, err, subscription.ErrNotAccessible)
		assert.True(t, out.Equal(in))
	})

	t.Run("same offer is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := m.Subscribe(ctx, rec(4, 0), offer(4))
		require.ErrorIs(t, err, subscription.ErrAlreadySubscribed)
	})

	t.Run("input record is not modified", func(t *testing.T) {
		t.Parallel()
		in := rec(1, 0)
		_, err := m.Subscribe(ctx, in, offer(2, subscription.RuleSwitchSub))
		require.NoError(t, err)
		assert.Equal(t, subscription.OfferID(1), *in.Current)
		assert.Nil(t, in.Previous)
	})
}

func TestMachine_Unsubscribe(t *testing.T) {
	t.Parallel()
	m := subscription.NewMachine()
	ctx := context.Background()

	t.Run("current offer", func(t *testing.T) {
		t.Parallel()
		next, err := m.Unsubscribe(ctx, rec(2, 1), offer(2))
		require.NoError(t, err)
		assert.True(t, next.Equal(rec(0, 2)))
	})

	t.Run("other offer", func(t *testing.T) {
		t.Parallel()
		_, err := m.Unsubscribe(ctx, rec(2, 1), offer(1))
		require.ErrorIs(t, err, subscription.ErrNotCurrentOffer)
	})

	t.Run("nothing held", func(t *testing.T) {
		t.Parallel()
		_, err := m.Unsubscribe(ctx, rec(0, 2), offer(2))
		require.ErrorIs(t, err, subscription.ErrNotCurrentOffer)
	})
}

func TestMachine_CanSubscribe(t *testing.T) {
	t.Parallel()
	m := subscription.NewMachine()

	assert.True(t, m.CanSubscribe(context.Background(), rec(0, 0), offer(1, subscription.RuleFirstSub)))
	assert.False(t, m.CanSubscribe(context.Background(), rec(0, 0), offer(1, subscription.RuleSwitchSub)))
	assert.False(t, m.CanSubscribe(context.Background(), rec(1, 0), offer(1)))
}

func TestStateOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, subscription.StateNone, subscription.StateOf(rec(0, 3)))
	assert.Equal(t, subscription.StateActive, subscription.StateOf(rec(3, 0)))
}
