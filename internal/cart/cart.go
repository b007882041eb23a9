// Package cart implements the per-visitor shopping cart. Carts live in a
// session store keyed by the visitor's session id, not in the database
// proper, and hold price snapshots taken when an item was added.
package cart

import (
	"github.com/shopspring/decimal"
)

// Entry is one cart line. Price is the menu price at add time; later
// catalog edits do not touch it. Quantity is always >= 1: an entry that
// would drop to zero is removed instead.
type Entry struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Cart keeps entries in first-add order.
type Cart struct {
	Entries []Entry `json:"entries"`
}

func (c *Cart) find(itemID string) int {
	for i := range c.Entries {
		if c.Entries[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
}

// Count returns the total number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, e := range c.Entries {
		n += e.Quantity
	}
	return n
}

// Line is a cart entry with its derived subtotal.
type Line struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Subtotal decimal.Decimal
}

// View is the rendered cart: lines in insertion order plus the total.
type View struct {
	Lines []Line
	Total decimal.Decimal
}

func (c *Cart) view() View {
	v := View{Total: decimal.Zero}
	for _, e := range c.Entries {
		sub := e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		v.Lines = append(v.Lines, Line{
			ItemID:   e.ItemID,
			Name:     e.Name,
			Price:    e.Price,
			Quantity: e.Quantity,
			Subtotal: sub,
		})
		v.Total = v.Total.Add(sub)
	}
	return v
}
