package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCategoryColumns = `id, user_id, name, icon, color, type, is_default, created_at, updated_at`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var typeStr string

	if err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &typeStr, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = transaction.Type(typeStr)

	return &c, nil
}

const insertCategory = `
	INSERT INTO categories (user_id, name, icon, color, type, is_default)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at
`

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	err := s.db.QueryRowContext(ctx, insertCategory,
		c.UserID, c.Name, c.Icon, c.Color, c.Type, c.IsDefault,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) CreateCategories(ctx context.Context, cats []*category.Category) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, c := range cats {
		err := dbTx.QueryRowContext(ctx, insertCategory,
			c.UserID, c.Name, c.Icon, c.Color, c.Type, c.IsDefault,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating category %q: %w", c.Name, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string, typ *transaction.Type) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}

	if typ != nil {
		query += " AND type = $2"

		args = append(args, *typ)
	}

	query += " ORDER BY type, is_default DESC, name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return cats, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Icon, c.Color, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
