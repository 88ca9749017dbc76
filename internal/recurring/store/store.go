package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/database"
	"github.com/MrJamesThe3rd/dompetku/internal/recurring"
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

const selectTemplateColumns = `
	id, user_id, type, amount, category, category_id, note, frequency,
	start_date, next_date, is_active, created_at, updated_at
`

func scanTemplate(s scanner) (*recurring.Template, error) {
	var (
		t         recurring.Template
		typeStr   string
		frequency string
		note      sql.NullString
	)

	if err := s.Scan(
		&t.ID, &t.UserID, &typeStr, &t.Amount, &t.Category, &t.CategoryID, &note, &frequency,
		&t.StartDate, &t.NextDate, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Type = transaction.Type(typeStr)
	t.Frequency = recurring.Frequency(frequency)
	t.Note = note.String

	return &t, nil
}

func (s *Store) CreateTemplate(ctx context.Context, t *recurring.Template) error {
	query := `
		INSERT INTO recurring_transactions
			(user_id, type, amount, category, category_id, note, frequency, start_date, next_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		t.UserID, t.Type, t.Amount, t.Category, t.CategoryID, t.Note, t.Frequency,
		t.StartDate, t.NextDate, t.IsActive, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("creating recurring transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	query := `SELECT ` + selectTemplateColumns + ` FROM recurring_transactions WHERE id = $1`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recurring.ErrNotFound
		}

		return nil, fmt.Errorf("getting recurring transaction: %w", err)
	}

	return t, nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*recurring.Template, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recurring transactions: %w", err)
	}
	defer rows.Close()

	var templates []*recurring.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recurring transaction: %w", err)
		}

		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (s *Store) ListTemplates(ctx context.Context, userID string) ([]*recurring.Template, error) {
	query := `SELECT ` + selectTemplateColumns + `
		FROM recurring_transactions
		WHERE user_id = $1
		ORDER BY next_date`

	return s.list(ctx, query, userID)
}

func (s *Store) ListDue(ctx context.Context, asOf time.Time) ([]*recurring.Template, error) {
	query := `SELECT ` + selectTemplateColumns + `
		FROM recurring_transactions
		WHERE is_active AND next_date <= $1
		ORDER BY next_date`

	return s.list(ctx, query, asOf)
}

func (s *Store) UpdateTemplate(ctx context.Context, t *recurring.Template) error {
	query := `
		UPDATE recurring_transactions
		SET next_date = $2, is_active = $3, updated_at = $4
		WHERE id = $1`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, t.ID, t.NextDate, t.IsActive, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating recurring transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if n == 0 {
		return recurring.ErrNotFound
	}

	return nil
}
