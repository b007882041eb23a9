package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps carts in a JSONB column so sessions survive restarts.
type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT entries FROM carts WHERE session_id = $1
	`, sessionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row means no cart yet.
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var entries []Entry
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("unmarshal cart: %w", err)
		}
	}
	return &Cart{Entries: entries}, nil
}

func (s *PGStore) Put(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c.Entries)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO carts (session_id, entries, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			entries = $2,
			updated_at = NOW()
	`, sessionID, raw)
	return err
}

func (s *PGStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID)
	return err
}
