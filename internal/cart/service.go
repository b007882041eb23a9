package cart

import (
	"context"
	"strconv"

	"github.com/deliciousbites/restaurant/internal/catalog"
)

// Catalog is the read side of the menu the cart needs.
type Catalog interface {
	GetItem(ctx context.Context, id int64) (*catalog.MenuItem, error)
}

type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, cat Catalog) *Service {
	return &Service{store: store, catalog: cat}
}

// Add puts one unit of the item into the visitor's cart. Unknown and
// unavailable items both come back as catalog.ErrNotFound. Re-adding an
// item increments its quantity; the price snapshot from the first add is
// kept.
func (s *Service) Add(ctx context.Context, sessionID string, itemID int64) (*Entry, error) {
	it, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, catalog.ErrNotFound
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := strconv.FormatInt(itemID, 10)
	if i := c.find(key); i >= 0 {
		c.Entries[i].Quantity++
	} else {
		c.Entries = append(c.Entries, Entry{
			ItemID:   key,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: 1,
		})
	}
	if err := s.store.Put(ctx, sessionID, c); err != nil {
		return nil, err
	}
	i := c.find(key)
	return &c.Entries[i], nil
}

// Update sets the quantity for an entry. A quantity of zero or less
// removes the entry; no zero-quantity state is representable.
func (s *Service) Update(ctx context.Context, sessionID, itemID string, quantity int) error {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	i := c.find(itemID)
	if i < 0 {
		return nil
	}
	if quantity > 0 {
		c.Entries[i].Quantity = quantity
	} else {
		c.removeAt(i)
	}
	return s.store.Put(ctx, sessionID, c)
}

// Remove drops an entry. Removing an absent entry is a no-op.
func (s *Service) Remove(ctx context.Context, sessionID, itemID string) error {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	i := c.find(itemID)
	if i < 0 {
		return nil
	}
	c.removeAt(i)
	return s.store.Put(ctx, sessionID, c)
}

// View renders the cart lines in insertion order with subtotals and the
// running total.
func (s *Service) View(ctx context.Context, sessionID string) (View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return c.view(), nil
}

// Count reports how many units are in the cart, for the badge on the
// order page.
func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
