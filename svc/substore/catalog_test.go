package substore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/subscription"
	"github.com/supersub/supersub/svc/substore"
)

func TestDefaultOffers(t *testing.T) {
	t.Parallel()

	offers := substore.DefaultOffers()
	require.Len(t, offers, 3)
	for _, o := range offers {
		assert.NoError(t, o.Validate())
	}

	assert.True(t, offers[0].HasRule(subscription.RuleFirstSub))
	assert.False(t, offers[0].HasRule(subscription.RuleRenewSub))
	assert.True(t, offers[1].HasRule(subscription.RuleRenewSub))
	assert.True(t, offers[2].HasRule(subscription.RuleSwitchSub))
}

func TestInMemCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("list keeps order and copies", func(t *testing.T) {
		t.Parallel()
		c := substore.NewInMemCatalog(substore.DefaultOffers()...)

		offers, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, offers, 3)
		assert.Equal(t, []subscription.OfferID{1, 2, 3}, []subscription.OfferID{offers[0].ID, offers[1].ID, offers[2].ID})

		offers[2].Rules[0].Kind = subscription.RuleSwitchSub
		again, err := c.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, subscription.RuleFirstSub, again.Rules[0].Kind)
	})

	t.Run("unknown offer", func(t *testing.T) {
		t.Parallel()
		c := substore.NewInMemCatalog(substore.DefaultOffers()...)
		_, err := c.Get(ctx, 9)
		assert.ErrorIs(t, err, subscription.ErrOfferNotFound)
	})

	t.Run("invalid input panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { substore.NewInMemCatalog() })
		assert.Panics(t, func() {
			o := substore.DefaultOffers()[0]
			substore.NewInMemCatalog(o, o)
		})
		assert.Panics(t, func() {
			substore.NewInMemCatalog(subscription.Offer{ID: 1, Title: "free", Price: 0})
		})
	})
}

const catalogYAML = `
offers:
  - id: 10
    title: Basic
    description: entry tier
    price: 5
    benefits: calls
    access_rules:
      - { id: 1, access_type: FIRST_SUB }
  - id: 11
    title: Plus
    price: 9
    access_rules:
      - { id: 2, access_type: renew_sub }
      - { id: 3, access_type: SWITCH_SUB }
  - id: 12
    title: Open
    price: 1
`

func TestParseYAMLCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		c, err := substore.ParseYAMLCatalog(strings.NewReader(catalogYAML))
		require.NoError(t, err)

		offers, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, offers, 3)
		assert.Equal(t, "entry tier", offers[0].Description)
		assert.Equal(t, []subscription.AccessRule{
			{ID: 2, Kind: subscription.RuleRenewSub},
			{ID: 3, Kind: subscription.RuleSwitchSub},
		}, offers[1].Rules)
		assert.Empty(t, offers[2].Rules)
	})

	t.Run("unknown rule kind", func(t *testing.T) {
		t.Parallel()
		_, err := substore.ParseYAMLCatalog(strings.NewReader(`
offers:
  - id: 1
    title: x
    price: 1
    access_rules: [{ id: 1, access_type: LOYALTY }]
`))
		assert.ErrorIs(t, err, substore.ErrUnknownRuleKind)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := substore.ParseYAMLCatalog(strings.NewReader("offers:\n  - id: 1\n    name: x\n"))
		assert.ErrorIs(t, err, substore.ErrFailedToDecodeYAML)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		_, err := substore.ParseYAMLCatalog(strings.NewReader("offers: []\n"))
		assert.ErrorIs(t, err, substore.ErrInvalidCatalog)
	})
}

func TestLoadYAMLCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "offers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	c, err := substore.LoadYAMLCatalog(path)
	require.NoError(t, err)
	o, err := c.Get(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Open", o.Title)

	_, err = substore.LoadYAMLCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, substore.ErrFailedToReadFile)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context) ([]subscription.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Offer), args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, id subscription.OfferID) (*subscription.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Offer), args.Error(1)
}

func TestCachedCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get hits next once", func(t *testing.T) {
		t.Parallel()
		o := substore.DefaultOffers()[0]
		next := &mockCatalog{}
		next.On("Get", mock.Anything, o.ID).Return(&o, nil).Once()

		c := substore.NewCachedCatalog(next, 8, time.Minute)
		for range 3 {
			got, err := c.Get(ctx, o.ID)
			require.NoError(t, err)
			assert.Equal(t, o.Title, got.Title)
		}
		next.AssertExpectations(t)
	})

	t.Run("list warms offers", func(t *testing.T) {
		t.Parallel()
		next := &mockCatalog{}
		next.On("List", mock.Anything).Return(substore.DefaultOffers(), nil).Once()

		c := substore.NewCachedCatalog(next, 8, time.Minute)
		_, err := c.List(ctx)
		require.NoError(t, err)
		offers, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, offers, 3)

		got, err := c.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Offre Standard", got.Title)
		next.AssertExpectations(t)
		next.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("misses and errors are not cached", func(t *testing.T) {
		t.Parallel()
		errDown := errors.New("down")
		next := &mockCatalog{}
		next.On("Get", mock.Anything, subscription.OfferID(4)).Return(nil, subscription.ErrOfferNotFound).Twice()
		next.On("Get", mock.Anything, subscription.OfferID(5)).Return(nil, errDown).Once()

		c := substore.NewCachedCatalog(next, 8, time.Minute)
		_, err := c.Get(ctx, 4)
		assert.ErrorIs(t, err, subscription.ErrOfferNotFound)
		_, err = c.Get(ctx, 4)
		assert.ErrorIs(t, err, subscription.ErrOfferNotFound)
		_, err = c.Get(ctx, 5)
		assert.ErrorIs(t, err, errDown)
		next.AssertExpectations(t)
	})

	t.Run("cached offers are copies", func(t *testing.T) {
		t.Parallel()
		o := substore.DefaultOffers()[2]
		next := &mockCatalog{}
		next.On("Get", mock.Anything, o.ID).Return(&o, nil).Once()

		c := substore.NewCachedCatalog(next, 8, time.Minute)
		first, err := c.Get(ctx, o.ID)
		require.NoError(t, err)
		first.Rules = nil

		second, err := c.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Len(t, second.Rules, 3)
	})
}
