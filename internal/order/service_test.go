package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciousbites/restaurant/internal/cart"
	"github.com/deliciousbites/restaurant/internal/catalog"
	"github.com/deliciousbites/restaurant/internal/validate"
)

// stubRepo keeps orders in memory and enforces code uniqueness the way
// the database index does.
type stubRepo struct {
	mu     sync.Mutex
	orders map[string]*Order
	items  map[string][]Item

	// failCreates makes the next n Create calls fail with ErrCodeTaken.
	failCreates int
	createCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: map[string]*Order{}, items: map[string][]Item{}}
}

func (s *stubRepo) Create(_ context.Context, o *Order, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.failCreates > 0 {
		s.failCreates--
		return ErrCodeTaken
	}
	if _, exists := s.orders[o.Code]; exists {
		return ErrCodeTaken
	}
	o.ID = int64(len(s.orders) + 1)
	cp := *o
	s.orders[o.Code] = &cp
	s.items[o.Code] = append([]Item(nil), items...)
	return nil
}

func (s *stubRepo) GetByCode(_ context.Context, code string) (*Order, []Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[code]
	if !ok {
		return nil, nil, ErrNotFound
	}
	return o, s.items[code], nil
}

func (s *stubRepo) List(_ context.Context, _, _ int) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

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

type stubNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *stubNotifier) Go(to, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, to+" "+subject)
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(repo *stubRepo) (*Service, *cart.Service, *stubNotifier) {
	cat := &stubCatalog{items: map[int64]catalog.MenuItem{
		1: {ID: 1, Name: "Paneer Tikka", Price: price("8.99"), Available: true},
		2: {ID: 2, Name: "Tandoori Platter", Price: price("24.99"), Available: true},
	}}
	carts := cart.NewService(cart.NewMemoryStore(), cat)
	notifier := &stubNotifier{}
	svc := NewService(repo, carts, notifier, "Delicious Bites", "7004125809")
	return svc, carts, notifier
}

func validForm() CheckoutForm {
	return CheckoutForm{
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "555-0101",
		TableNumber:   7,
		PaymentMethod: "Cash",
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := newStubRepo()
	svc, _, notifier := newFixture(repo)

	_, err := svc.Checkout(context.Background(), "sid", validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, repo.orders, "no order may be created for an empty cart")
	assert.Empty(t, notifier.calls)
}

// failingCarts simulates a cart store outage.
type failingCarts struct{ err error }

func (f *failingCarts) View(context.Context, string) (cart.View, error) { return cart.View{}, f.err }
func (f *failingCarts) Clear(context.Context, string) error             { return f.err }

// A cart store outage is fatal to the checkout; it must never be
// reported as an empty cart.
func TestCheckoutCartStoreFailureIsFatal(t *testing.T) {
	repo := newStubRepo()
	storeErr := errors.New("connection refused")
	svc := NewService(repo, &failingCarts{err: storeErr}, &stubNotifier{}, "Delicious Bites", "7004125809")

	_, err := svc.Checkout(context.Background(), "sid", validForm())
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, repo.orders)
}

func TestCheckoutHappyPath(t *testing.T) {
	repo := newStubRepo()
	svc, carts, notifier := newFixture(repo)
	ctx := context.Background()

	// {ItemA: 8.99 x 2} and {ItemB: 24.99 x 1}.
	_, err := carts.Add(ctx, "sid", 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, "sid", 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, "sid", 2)
	require.NoError(t, err)

	code, err := svc.Checkout(ctx, "sid", validForm())
	require.NoError(t, err)
	require.Len(t, code, 10)

	o, items, err := svc.Receipt(ctx, code)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(price("42.97")), "total %s", o.Total)
	assert.Equal(t, PaymentCompleted, o.PaymentStatus)
	assert.Equal(t, "Asha", o.CustomerName)

	require.Len(t, items, 2, "one order item per distinct cart entry")
	assert.Equal(t, "Paneer Tikka", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(price("8.99")))
	assert.Equal(t, "Tandoori Platter", items[1].Name)
	assert.Equal(t, 1, items[1].Quantity)
	assert.True(t, items[1].Price.Equal(price("24.99")))

	// Cart must be cleared after a successful checkout.
	v, err := carts.View(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, v.Lines)

	require.Len(t, notifier.calls, 1)
	assert.Contains(t, notifier.calls[0], "asha@example.com")
	assert.Contains(t, notifier.calls[0], code)
}

func TestCheckoutPriceLockedAtAddTime(t *testing.T) {
	repo := newStubRepo()
	cat := &stubCatalog{items: map[int64]catalog.MenuItem{
		1: {ID: 1, Name: "Paneer Tikka", Price: price("8.99"), Available: true},
	}}
	carts := cart.NewService(cart.NewMemoryStore(), cat)
	svc := NewService(repo, carts, &stubNotifier{}, "Delicious Bites", "7004125809")
	ctx := context.Background()

	_, err := carts.Add(ctx, "sid", 1)
	require.NoError(t, err)

	// Price change after the item was added must not move the total.
	cat.items[1] = catalog.MenuItem{ID: 1, Name: "Paneer Tikka", Price: price("99.99"), Available: true}

	code, err := svc.Checkout(ctx, "sid", validForm())
	require.NoError(t, err)

	o, items, err := svc.Receipt(ctx, code)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(price("8.99")))
	assert.True(t, items[0].Price.Equal(price("8.99")))
}

func TestCheckoutRetriesOnCodeCollision(t *testing.T) {
	repo := newStubRepo()
	repo.failCreates = 2
	svc, carts, _ := newFixture(repo)
	ctx := context.Background()

	_, err := carts.Add(ctx, "sid", 1)
	require.NoError(t, err)

	code, err := svc.Checkout(ctx, "sid", validForm())
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, repo.createCalls)
}

func TestCheckoutGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newStubRepo()
	repo.failCreates = codeAttempts
	svc, carts, _ := newFixture(repo)
	ctx := context.Background()

	_, err := carts.Add(ctx, "sid", 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "sid", validForm())
	assert.ErrorIs(t, err, ErrCodeTaken)
	assert.Empty(t, repo.orders)
}

func TestCheckoutValidation(t *testing.T) {
	repo := newStubRepo()
	svc, carts, _ := newFixture(repo)
	ctx := context.Background()

	_, err := carts.Add(ctx, "sid", 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*CheckoutForm)
	}{
		{"missing name", func(f *CheckoutForm) { f.CustomerName = "" }},
		{"bad email", func(f *CheckoutForm) { f.CustomerEmail = "not-an-email" }},
		{"missing phone", func(f *CheckoutForm) { f.CustomerPhone = " " }},
		{"zero table", func(f *CheckoutForm) { f.TableNumber = 0 }},
		{"missing payment method", func(f *CheckoutForm) { f.PaymentMethod = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			_, err := svc.Checkout(ctx, "sid", form)
			var fe validate.FieldError
			assert.ErrorAs(t, err, &fe)
		})
	}

	// The cart survives rejected checkouts.
	v, err := carts.View(ctx, "sid")
	require.NoError(t, err)
	assert.Len(t, v.Lines, 1)
	assert.Empty(t, repo.orders)
}

func TestReceiptUnknownCode(t *testing.T) {
	svc, _, _ := newFixture(newStubRepo())
	_, _, err := svc.Receipt(context.Background(), "NOSUCHCODE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentCheckoutsYieldDistinctCodes(t *testing.T) {
	repo := newStubRepo()
	svc, carts, _ := newFixture(repo)
	ctx := context.Background()

	const n = 50
	codes := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		sid := fmt.Sprintf("visitor-%d", i)
		_, err := carts.Add(ctx, sid, 1)
		require.NoError(t, err)

		wg.Add(1)
		go func(i int, sid string) {
			defer wg.Done()
			codes[i], errs[i] = svc.Checkout(ctx, sid, validForm())
		}(i, sid)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[codes[i]], "duplicate code %s", codes[i])
		seen[codes[i]] = true
	}
	assert.Len(t, repo.orders, n)
}
