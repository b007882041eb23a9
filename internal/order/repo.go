package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrCodeTaken reports that the generated order code already exists.
	// Checkout retries with a fresh code.
	ErrCodeTaken = errors.New("order code already taken")
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByCode(ctx context.Context, code string) (*Order, []Item, error)
	List(ctx context.Context, limit, offset int) ([]Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create persists the order and its items in one transaction, so a
// failure mid-way leaves no partial order behind.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (code, customer_name, customer_email, customer_phone,
		                    table_number, total_amount, payment_method, payment_status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
		RETURNING id, created_at
	`, o.Code, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.TableNumber, o.Total, o.PaymentMethod, o.PaymentStatus).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCodeTaken
		}
		return err
	}

	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, o.ID, items[i].MenuItemID, items[i].Name, items[i].Quantity, items[i].Price).Scan(&items[i].ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByCode(ctx context.Context, code string) (*Order, []Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	var total string
	err := r.db.QueryRow(ctx, `
		SELECT id, code, customer_name, customer_email, customer_phone,
		       table_number, total_amount::text, payment_method, payment_status, created_at
		FROM orders WHERE code=$1
	`, code).Scan(&o.ID, &o.Code, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.TableNumber, &total, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, price::text
		FROM order_items WHERE order_id=$1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &price); err != nil {
			return nil, nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, code, customer_name, customer_email, customer_phone,
		       table_number, total_amount::text, payment_method, payment_status, created_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var total string
		if err := rows.Scan(&o.ID, &o.Code, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.TableNumber, &total, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
