package content

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("content not found")

type Repository interface {
	GetAbout(ctx context.Context) (*About, error)
	UpsertAbout(ctx context.Context, a *About) error

	ListChefs(ctx context.Context, activeOnly bool, limit int) ([]Chef, error)
	CreateChef(ctx context.Context, c *Chef) error
	UpdateChef(ctx context.Context, c *Chef) error
	DeleteChef(ctx context.Context, id int64) (bool, error)

	ListReviews(ctx context.Context, featuredOnly bool, limit int) ([]Review, error)
	ListAllReviews(ctx context.Context, limit, offset int) ([]Review, error)
	CreateReview(ctx context.Context, rv *Review) error
	ModerateReview(ctx context.Context, id int64, approved, featured bool) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetAbout(ctx context.Context) (*About, error) {
	var a About
	err := r.db.QueryRow(ctx, `
		SELECT id, title, content FROM about ORDER BY id LIMIT 1
	`).Scan(&a.ID, &a.Title, &a.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAbout keeps a single about row: the first write inserts, later
// writes replace it.
func (r *PGRepo) UpsertAbout(ctx context.Context, a *About) error {
	existing, err := r.GetAbout(ctx)
	if errors.Is(err, ErrNotFound) {
		return r.db.QueryRow(ctx, `
			INSERT INTO about (title, content) VALUES ($1,$2) RETURNING id
		`, a.Title, a.Content).Scan(&a.ID)
	}
	if err != nil {
		return err
	}
	a.ID = existing.ID
	_, err = r.db.Exec(ctx, `UPDATE about SET title=$2, content=$3 WHERE id=$1`, a.ID, a.Title, a.Content)
	return err
}

func (r *PGRepo) ListChefs(ctx context.Context, activeOnly bool, limit int) ([]Chef, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, position, bio, experience_years, specialty, is_active, rank
		FROM chefs
		WHERE ($1 = false OR is_active)
		ORDER BY rank, name LIMIT $2
	`, activeOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Chef
	for rows.Next() {
		var c Chef
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.Bio, &c.ExperienceYears,
			&c.Specialty, &c.Active, &c.Rank); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateChef(ctx context.Context, c *Chef) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO chefs (name, position, bio, experience_years, specialty, is_active, rank)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, c.Name, c.Position, c.Bio, c.ExperienceYears, c.Specialty, c.Active, c.Rank).Scan(&c.ID)
}

func (r *PGRepo) UpdateChef(ctx context.Context, c *Chef) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE chefs
		SET name = COALESCE(NULLIF($2,''), name),
		    position = COALESCE(NULLIF($3,''), position),
		    bio = COALESCE(NULLIF($4,''), bio),
		    experience_years = $5,
		    specialty = $6,
		    is_active = $7,
		    rank = $8
		WHERE id = $1
	`, c.ID, c.Name, c.Position, c.Bio, c.ExperienceYears, c.Specialty, c.Active, c.Rank)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteChef(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM chefs WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ListReviews returns approved reviews, newest first. featuredOnly narrows
// to the home-page picks.
func (r *PGRepo) ListReviews(ctx context.Context, featuredOnly bool, limit int) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, rating, comment, is_featured, is_approved, created_at
		FROM reviews
		WHERE is_approved AND ($1 = false OR is_featured)
		ORDER BY created_at DESC LIMIT $2
	`, featuredOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment,
			&rv.Featured, &rv.Approved, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ListAllReviews is the moderation view: unapproved reviews included.
func (r *PGRepo) ListAllReviews(ctx context.Context, limit, offset int) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, rating, comment, is_featured, is_approved, created_at
		FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment,
			&rv.Featured, &rv.Approved, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateReview(ctx context.Context, rv *Review) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO reviews (customer_name, rating, comment, is_featured, is_approved, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`, rv.CustomerName, rv.Rating, rv.Comment, rv.Featured, rv.Approved).Scan(&rv.ID, &rv.CreatedAt)
}

func (r *PGRepo) ModerateReview(ctx context.Context, id int64, approved, featured bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews SET is_approved=$2, is_featured=$3 WHERE id=$1
	`, id, approved, featured)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
