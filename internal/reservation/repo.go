package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("reservation not found")

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	List(ctx context.Context, limit, offset int) ([]Reservation, error)
	Update(ctx context.Context, id int64, status string, tableNumber int) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, res *Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO reservations (name, email, phone, date, time, guests,
		                          table_number, special_requests, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		RETURNING id, created_at
	`, res.Name, res.Email, res.Phone, res.Date, res.Time, res.Guests,
		res.TableNumber, res.SpecialRequests, res.Status).Scan(&res.ID, &res.CreatedAt)
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, to_char(date,'YYYY-MM-DD'), to_char(time,'HH24:MI'),
		       guests, table_number, special_requests, status, created_at
		FROM reservations ORDER BY date, time LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.Name, &res.Email, &res.Phone, &res.Date, &res.Time,
			&res.Guests, &res.TableNumber, &res.SpecialRequests, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, id int64, status string, tableNumber int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET status=$2, table_number=$3 WHERE id=$1
	`, id, status, tableNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
