// Package contact stores contact-form submissions.
package contact

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deliciousbites/restaurant/internal/validate"
)

type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Contact) Validate() error {
	if err := validate.Required("name", c.Name); err != nil {
		return err
	}
	if err := validate.Email("email", c.Email); err != nil {
		return err
	}
	if err := validate.Required("subject", c.Subject); err != nil {
		return err
	}
	return validate.Required("message", c.Message)
}

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	List(ctx context.Context, limit, offset int) ([]Contact, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Contact) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO contacts (name, email, subject, message, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		RETURNING id, created_at
	`, c.Name, c.Email, c.Subject, c.Message).Scan(&c.ID, &c.CreatedAt)
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
