package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectBotUserColumns = `
	id, user_id, platform, platform_user_id, platform_username, is_active, created_at, updated_at
`

func scanBotUser(s scanner) (*botuser.BotUser, error) {
	var (
		u        botuser.BotUser
		platform string
		username sql.NullString
	)

	if err := s.Scan(
		&u.ID, &u.UserID, &platform, &u.PlatformUserID, &username, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.Platform = botuser.Platform(platform)
	u.PlatformUsername = username.String

	return &u, nil
}

func (s *Store) CreateBotUser(ctx context.Context, u *botuser.BotUser) error {
	query := `
		INSERT INTO bot_users (user_id, platform, platform_user_id, platform_username, is_active, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		u.UserID, u.Platform, u.PlatformUserID, u.PlatformUsername, u.IsActive, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return botuser.ErrAlreadyLinked
		}

		return fmt.Errorf("creating bot user: %w", err)
	}

	return nil
}

func (s *Store) GetBotUser(ctx context.Context, id uuid.UUID) (*botuser.BotUser, error) {
	query := `SELECT ` + selectBotUserColumns + ` FROM bot_users WHERE id = $1`

	u, err := scanBotUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, botuser.ErrNotFound
		}

		return nil, fmt.Errorf("getting bot user: %w", err)
	}

	return u, nil
}

func (s *Store) FindByPlatformUser(ctx context.Context, platform botuser.Platform, platformUserID string) (*botuser.BotUser, error) {
	query := `SELECT ` + selectBotUserColumns + `
		FROM bot_users
		WHERE platform = $1 AND platform_user_id = $2`

	u, err := scanBotUser(s.db.QueryRowContext(ctx, query, platform, platformUserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, botuser.ErrNotLinked
		}

		return nil, fmt.Errorf("finding bot user: %w", err)
	}

	return u, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*botuser.BotUser, error) {
	query := `SELECT ` + selectBotUserColumns + `
		FROM bot_users
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bot users: %w", err)
	}
	defer rows.Close()

	var users []*botuser.BotUser

	for rows.Next() {
		u, err := scanBotUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bot user: %w", err)
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Store) UpdateBotUser(ctx context.Context, u *botuser.BotUser) error {
	query := `
		UPDATE bot_users
		SET platform_username = NULLIF($2, ''), is_active = $3, updated_at = $4
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, u.ID, u.PlatformUsername, u.IsActive, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating bot user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if n == 0 {
		return botuser.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteBotUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bot_users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting bot user: %w", err)
	}

	return nil
}

func (s *Store) CreateLinkToken(ctx context.Context, t *botuser.LinkToken) error {
	query := `INSERT INTO link_tokens (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, query, t.Token, t.UserID, t.ExpiresAt, t.CreatedAt); err != nil {
		return fmt.Errorf("creating link token: %w", err)
	}

	return nil
}

// ConsumeLinkToken deletes and returns the token in one statement so that a
// token cannot be redeemed twice.
func (s *Store) ConsumeLinkToken(ctx context.Context, token string) (*botuser.LinkToken, error) {
	query := `
		DELETE FROM link_tokens
		WHERE token = $1
		RETURNING token, user_id, expires_at, created_at`

	var t botuser.LinkToken

	err := s.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, botuser.ErrInvalidLinkToken
		}

		return nil, fmt.Errorf("consuming link token: %w", err)
	}

	return &t, nil
}
