package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses. The flow never actually charges anyone, so every
// checkout lands on completed; pending and failed exist for the schema
// and the admin surface.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Order struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	TableNumber   int             `json:"table_number"`
	Total         decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Item snapshots the menu item's name and price at checkout time, so the
// receipt stays readable after menu edits. The menu_item_id reference
// still cascades if the menu item is deleted.
type Item struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}
