// Package catalog provides the repository interface and PostgreSQL
// implementation for categories and menu items.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("menu item not found")

type Repository interface {
	ListCategories(ctx context.Context, availableOnly bool) ([]Category, error)
	GetItem(ctx context.Context, id int64) (*MenuItem, error)
	ListFeatured(ctx context.Context, limit int) ([]MenuItem, error)
	CountCategories(ctx context.Context) (int, error)

	CreateItem(ctx context.Context, it *MenuItem) error
	UpdateItem(ctx context.Context, it *MenuItem, updatePrice bool) error
	DeleteItem(ctx context.Context, id int64) (bool, error)
	CreateCategory(ctx context.Context, cat *Category) error
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// ListCategories returns categories with their items attached, categories
// by id and items by creation time. availableOnly filters the items shown
// to customers; the admin listing sees everything.
func (r *PGRepo) ListCategories(ctx context.Context, availableOnly bool) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	idx := map[int64]int{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		idx[c.ID] = len(cats)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT id, name, description, price::text, category_id, is_available, created_at
		FROM menu_items
		WHERE ($1 = false OR is_available)
		ORDER BY created_at, id
	`, availableOnly)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := idx[it.CategoryID]; ok {
			cats[i].Items = append(cats[i].Items, *it)
		}
	}
	return cats, itemRows.Err()
}

func (r *PGRepo) GetItem(ctx context.Context, id int64) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, price::text, category_id, is_available, created_at
		FROM menu_items WHERE id=$1
	`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *PGRepo) ListFeatured(ctx context.Context, limit int) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 6
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price::text, category_id, is_available, created_at
		FROM menu_items WHERE is_available
		ORDER BY created_at, id LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}

func (r *PGRepo) CreateItem(ctx context.Context, it *MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category_id, is_available, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`, it.Name, it.Description, it.Price, it.CategoryID, it.Available).Scan(&it.ID, &it.CreatedAt)
}

func (r *PGRepo) UpdateItem(ctx context.Context, it *MenuItem, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    price = CASE WHEN $4 THEN $5::numeric ELSE price END,
		    is_available = $6
		WHERE id = $1
	`, it.ID, it.Name, it.Description, updatePrice, it.Price, it.Available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteItem(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CreateCategory(ctx context.Context, cat *Category) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description) VALUES ($1,$2) RETURNING id
	`, cat.Name, cat.Description).Scan(&cat.ID)
}

// DeleteCategory removes the category; menu_items cascade with it.
func (r *PGRepo) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanItem(row pgx.Row) (*MenuItem, error) {
	var it MenuItem
	var price string
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &price, &it.CategoryID, &it.Available, &it.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	it.Price, err = decimal.NewFromString(price)
	return &it, err
}
