package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/reminder"
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

const selectReminderColumns = `
	id, user_id, title, amount, category_id, frequency, next_due_date,
	reminder_days, is_active, notes, created_at, updated_at
`

func scanReminder(s scanner) (*reminder.Reminder, error) {
	var (
		r         reminder.Reminder
		frequency string
		notes     sql.NullString
	)

	if err := s.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Amount, &r.CategoryID, &frequency, &r.NextDueDate,
		&r.ReminderDays, &r.IsActive, &notes, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Frequency = reminder.Frequency(frequency)
	r.Notes = notes.String

	return &r, nil
}

func (s *Store) CreateReminder(ctx context.Context, r *reminder.Reminder) error {
	query := `
		INSERT INTO bill_reminders
			(user_id, title, amount, category_id, frequency, next_due_date, reminder_days, is_active, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		r.UserID, r.Title, r.Amount, r.CategoryID, r.Frequency, r.NextDueDate,
		r.ReminderDays, r.IsActive, r.Notes, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("creating reminder: %w", err)
	}

	return nil
}

func (s *Store) GetReminder(ctx context.Context, id uuid.UUID) (*reminder.Reminder, error) {
	query := `SELECT ` + selectReminderColumns + ` FROM bill_reminders WHERE id = $1`

	r, err := scanReminder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reminder.ErrNotFound
		}

		return nil, fmt.Errorf("getting reminder: %w", err)
	}

	return r, nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*reminder.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*reminder.Reminder

	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}

		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

func (s *Store) ListReminders(ctx context.Context, userID string) ([]*reminder.Reminder, error) {
	query := `SELECT ` + selectReminderColumns + `
		FROM bill_reminders
		WHERE user_id = $1
		ORDER BY next_due_date`

	return s.list(ctx, query, userID)
}

func (s *Store) ListDueBetween(ctx context.Context, userID string, from, to time.Time) ([]*reminder.Reminder, error) {
	query := `SELECT ` + selectReminderColumns + `
		FROM bill_reminders
		WHERE user_id = $1 AND is_active AND next_due_date BETWEEN $2 AND $3
		ORDER BY next_due_date`

	return s.list(ctx, query, userID, from, to)
}

func (s *Store) UpdateReminder(ctx context.Context, r *reminder.Reminder) error {
	query := `
		UPDATE bill_reminders
		SET title = $2, amount = $3, category_id = $4, frequency = $5, next_due_date = $6,
			reminder_days = $7, is_active = $8, notes = NULLIF($9, ''), updated_at = $10
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		r.ID, r.Title, r.Amount, r.CategoryID, r.Frequency, r.NextDueDate,
		r.ReminderDays, r.IsActive, r.Notes, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if n == 0 {
		return reminder.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bill_reminders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}

	return nil
}
