package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/database"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into an ILIKE pattern matching it literally anywhere.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, user_id, type, amount, category, category_id, note, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var note sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.UserID, &typeStr, &tx.Amount, &tx.Category, &tx.CategoryID, &note,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Note = note.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.user_id, t.type, t.amount, t.category, t.category_id, t.note, t.created_at, t.updated_at
`

const insertTransaction = `
	INSERT INTO transactions (user_id, type, amount, category, category_id, note, created_at)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	RETURNING id, created_at
`

func insert(ctx context.Context, q database.Executor, tx *transaction.Transaction) error {
	return q.QueryRowContext(ctx, insertTransaction,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.CategoryID,
		tx.Note,
		tx.CreatedAt,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, database.Conn(ctx, s.db), tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts all transactions atomically. It joins the
// transaction carried by ctx when there is one.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	return database.InTx(ctx, s.db, func(ctx context.Context) error {
		conn := database.Conn(ctx, s.db)

		for _, tx := range txs {
			if err := insert(ctx, conn, tx); err != nil {
				return fmt.Errorf("creating transaction: %w", err)
			}
		}

		return nil
	})
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, category = $3, category_id = $4, note = NULLIF($5, ''),
			created_at = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.CategoryID,
		tx.Note,
		tx.CreatedAt,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1 AND t.created_at >= $2 AND t.created_at <= $3
		ORDER BY t.created_at DESC`

	return s.query(ctx, query, userID, from, to)
}

func (s *Store) Search(ctx context.Context, filter transaction.SearchFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{filter.UserID}

	argIdx := 2

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (t.category ILIKE $%d ESCAPE '\' OR t.note ILIKE $%d ESCAPE '\')`, argIdx, argIdx)

		args = append(args, containsPattern(filter.Query))
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)

		args = append(args, *filter.DateFrom)
		argIdx++
	}

	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", argIdx)

		args = append(args, *filter.DateTo)
		argIdx++
	}

	if filter.AmountMin != nil {
		query += fmt.Sprintf(" AND t.amount >= $%d", argIdx)

		args = append(args, *filter.AmountMin)
		argIdx++
	}

	if filter.AmountMax != nil {
		query += fmt.Sprintf(" AND t.amount <= $%d", argIdx)

		args = append(args, *filter.AmountMax)
	}

	query += " ORDER BY t.created_at DESC"

	return s.query(ctx, query, args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
