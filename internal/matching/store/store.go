package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, userID, alias string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_aliases
		WHERE user_id = $1 AND alias = $2
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, userID, alias).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &id, nil
}

func (s *Store) CreateMapping(ctx context.Context, m *matching.Mapping) error {
	query := `
		INSERT INTO category_aliases (user_id, alias, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, alias) DO UPDATE SET category_id = EXCLUDED.category_id
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.UserID, m.Alias, m.CategoryID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context, userID string) ([]*matching.Mapping, error) {
	query := `
		SELECT id, user_id, alias, category_id, created_at
		FROM category_aliases
		WHERE user_id = $1
		ORDER BY alias
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.ID, &m.UserID, &m.Alias, &m.CategoryID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}

		mappings = append(mappings, &m)
	}

	return mappings, rows.Err()
}

func (s *Store) DeleteMapping(ctx context.Context, userID, alias string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_aliases WHERE user_id = $1 AND alias = $2`, userID, alias)
	if err != nil {
		return fmt.Errorf("deleting mapping: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
