package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/budget"
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

const selectBudgetColumns = `id, user_id, category_id, amount, period, created_at, updated_at`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	if err := s.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &b, nil
}

// upsertBudget keeps created_at of an existing row and only refreshes
// updated_at when the row is replaced.
const upsertBudget = `
	INSERT INTO budgets (user_id, category_id, amount, period)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, category_id) DO UPDATE
	SET amount = EXCLUDED.amount, period = EXCLUDED.period, updated_at = NOW()
	RETURNING ` + selectBudgetColumns

func (s *Store) UpsertBudget(ctx context.Context, b *budget.Budget) error {
	stored, err := scanBudget(s.db.QueryRowContext(ctx, upsertBudget,
		b.UserID, b.CategoryID, b.Amount, b.Period,
	))
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	*b = *stored

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrBudgetNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) GetByCategory(ctx context.Context, userID string, categoryID uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE user_id = $1 AND category_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, userID, categoryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrBudgetNotFound
		}

		return nil, fmt.Errorf("getting budget by category: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}
