package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciousbites/restaurant/internal/catalog"
)

type stubCatalog struct {
	items map[int64]catalog.MenuItem
}

func (s *stubCatalog) GetItem(_ context.Context, id int64) (*catalog.MenuItem, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &it, nil
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() *Service {
	cat := &stubCatalog{items: map[int64]catalog.MenuItem{
		1: {ID: 1, Name: "Paneer Tikka", Price: price("8.99"), Available: true},
		2: {ID: 2, Name: "Tandoori Platter", Price: price("24.99"), Available: true},
		3: {ID: 3, Name: "Off Menu Special", Price: price("99.00"), Available: false},
	}}
	return NewService(NewMemoryStore(), cat)
}

func TestAddUnknownItem(t *testing.T) {
	s := newTestService()
	_, err := s.Add(context.Background(), "sid", 42)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAddUnavailableItem(t *testing.T) {
	s := newTestService()
	_, err := s.Add(context.Background(), "sid", 3)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	v, err := s.View(context.Background(), "sid")
	require.NoError(t, err)
	assert.Empty(t, v.Lines)
}

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)
	entry, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, entry.Quantity)

	v, err := s.View(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, v.Lines, 1, "re-adding must not duplicate the entry")
	assert.Equal(t, 2, v.Lines[0].Quantity)
}

func TestViewInsertionOrderAndTotals(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, "sid", 2)
	require.NoError(t, err)
	_, err = s.Add(ctx, "sid", 1)
	require.NoError(t, err)

	v, err := s.View(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, v.Lines, 2)

	// First-add order, not alphabetical or most-recent.
	assert.Equal(t, "Paneer Tikka", v.Lines[0].Name)
	assert.Equal(t, "Tandoori Platter", v.Lines[1].Name)

	assert.True(t, v.Lines[0].Subtotal.Equal(price("17.98")), "got %s", v.Lines[0].Subtotal)
	assert.True(t, v.Lines[1].Subtotal.Equal(price("24.99")))
	assert.True(t, v.Total.Equal(price("42.97")), "got %s", v.Total)
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "sid", "1", 5))
	v, _ := s.View(ctx, "sid")
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 5, v.Lines[0].Quantity)
	assert.True(t, v.Total.Equal(price("44.95")))
}

func TestUpdateToZeroRemovesEntry(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)

	for _, qty := range []int{0, -3} {
		require.NoError(t, s.Update(ctx, "sid", "1", qty))
		v, _ := s.View(ctx, "sid")
		assert.Empty(t, v.Lines, "quantity %d must remove the entry", qty)
		_, err = s.Add(ctx, "sid", 1)
		require.NoError(t, err)
	}
}

func TestUpdateAbsentEntryIsNoop(t *testing.T) {
	s := newTestService()
	require.NoError(t, s.Update(context.Background(), "sid", "7", 3))

	v, _ := s.View(context.Background(), "sid")
	assert.Empty(t, v.Lines)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "sid", "1"))
	require.NoError(t, s.Remove(ctx, "sid", "1"))

	v, _ := s.View(ctx, "sid")
	assert.Empty(t, v.Lines)
}

func TestClear(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "sid", 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, "sid", 2)
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, "sid"))

	v, _ := s.View(ctx, "sid")
	assert.Empty(t, v.Lines)
	assert.True(t, v.Total.IsZero())
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Add(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, "bob", 2)
	require.NoError(t, err)

	va, _ := s.View(ctx, "alice")
	vb, _ := s.View(ctx, "bob")
	require.Len(t, va.Lines, 1)
	require.Len(t, vb.Lines, 1)
	assert.Equal(t, "Paneer Tikka", va.Lines[0].Name)
	assert.Equal(t, "Tandoori Platter", vb.Lines[0].Name)
}

// Total must equal the sum of price*quantity after any mix of operations,
// and quantities stay positive.
func TestTotalInvariantAcrossOperations(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	ops := []func() error{
		func() error { _, err := s.Add(ctx, "sid", 1); return err },
		func() error { _, err := s.Add(ctx, "sid", 2); return err },
		func() error { return s.Update(ctx, "sid", "1", 4) },
		func() error { _, err := s.Add(ctx, "sid", 1); return err },
		func() error { return s.Update(ctx, "sid", "2", 0) },
		func() error { _, err := s.Add(ctx, "sid", 2); return err },
		func() error { return s.Remove(ctx, "sid", "nope") },
		func() error { return s.Update(ctx, "sid", "2", 3) },
	}
	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)

		v, err := s.View(ctx, "sid")
		require.NoError(t, err)
		sum := decimal.Zero
		for _, l := range v.Lines {
			assert.Positive(t, l.Quantity)
			sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		assert.True(t, v.Total.Equal(sum), "after op %d: total %s, sum %s", i, v.Total, sum)
	}
}

// failingStore simulates a backend outage.
type failingStore struct{ err error }

func (f *failingStore) Get(context.Context, string) (*Cart, error) { return nil, f.err }
func (f *failingStore) Put(context.Context, string, *Cart) error   { return f.err }
func (f *failingStore) Delete(context.Context, string) error       { return f.err }

// A broken store must surface as an error, never as an empty cart.
func TestStoreFailuresPropagate(t *testing.T) {
	storeErr := errors.New("connection refused")
	cat := &stubCatalog{items: map[int64]catalog.MenuItem{
		1: {ID: 1, Name: "Paneer Tikka", Price: price("8.99"), Available: true},
	}}
	s := NewService(&failingStore{err: storeErr}, cat)
	ctx := context.Background()

	_, err := s.View(ctx, "sid")
	assert.ErrorIs(t, err, storeErr)

	_, err = s.Add(ctx, "sid", 1)
	assert.ErrorIs(t, err, storeErr)

	_, err = s.Count(ctx, "sid")
	assert.ErrorIs(t, err, storeErr)
}

func TestMemoryStoreCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	c := &Cart{Entries: []Entry{{ItemID: "1", Name: "x", Price: price("1.00"), Quantity: 1}}}
	require.NoError(t, st.Put(ctx, "sid", c))

	// Mutating the caller's cart must not leak into the store.
	c.Entries[0].Quantity = 99

	got, err := st.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Entries[0].Quantity)
}
