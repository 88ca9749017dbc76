package botuser

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultLinkTokenTTL = 15 * time.Minute

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=botuser
type Repository interface {
	CreateBotUser(ctx context.Context, u *BotUser) error
	GetBotUser(ctx context.Context, id uuid.UUID) (*BotUser, error)
	// FindByPlatformUser returns ErrNotLinked when nobody linked the account.
	FindByPlatformUser(ctx context.Context, platform Platform, platformUserID string) (*BotUser, error)
	ListByUser(ctx context.Context, userID string) ([]*BotUser, error)
	UpdateBotUser(ctx context.Context, u *BotUser) error
	DeleteBotUser(ctx context.Context, id uuid.UUID) error

	CreateLinkToken(ctx context.Context, t *LinkToken) error
	// ConsumeLinkToken deletes the token and returns it, or ErrInvalidLinkToken
	// when it does not exist.
	ConsumeLinkToken(ctx context.Context, token string) (*LinkToken, error)
}

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultLinkTokenTTL
	}

	return &Service{repo: repo, ttl: ttl, now: time.Now}
}

type LinkParams struct {
	UserID           string
	Platform         Platform
	PlatformUserID   string
	PlatformUsername string
}

func (p LinkParams) validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}

	if strings.TrimSpace(p.PlatformUserID) == "" {
		return ErrPlatformUserIDRequired
	}

	if !p.Platform.Valid() {
		return ErrInvalidPlatform
	}

	return nil
}

// Link attaches a platform account to a user. Linking an account again to the
// same user refreshes its username; linking it to someone else fails with
// ErrAlreadyLinked.
func (s *Service) Link(ctx context.Context, params LinkParams) (*BotUser, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByPlatformUser(ctx, params.Platform, params.PlatformUserID)

	switch {
	case err == nil:
		if existing.UserID != params.UserID {
			return nil, ErrAlreadyLinked
		}

		existing.PlatformUsername = params.PlatformUsername
		existing.UpdatedAt = new(s.now())

		if err := s.repo.UpdateBotUser(ctx, existing); err != nil {
			return nil, err
		}

		return existing, nil
	case !errors.Is(err, ErrNotLinked):
		return nil, err
	}

	u := &BotUser{
		UserID:           params.UserID,
		Platform:         params.Platform,
		PlatformUserID:   params.PlatformUserID,
		PlatformUsername: params.PlatformUsername,
		IsActive:         true,
		CreatedAt:        s.now(),
	}

	if err := s.repo.CreateBotUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// CreateLinkToken issues a one-time token valid for the configured TTL.
func (s *Service) CreateLinkToken(ctx context.Context, userID string) (*LinkToken, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	now := s.now()

	t := &LinkToken{
		Token:     rand.Text(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.repo.CreateLinkToken(ctx, t); err != nil {
		return nil, fmt.Errorf("creating link token: %w", err)
	}

	return t, nil
}

// VerifyLinkToken consumes the token and returns the user it was issued for.
// Expired tokens are consumed too.
func (s *Service) VerifyLinkToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrTokenRequired
	}

	t, err := s.repo.ConsumeLinkToken(ctx, token)
	if err != nil {
		return "", err
	}

	if t.Expired(s.now()) {
		return "", ErrInvalidLinkToken
	}

	return t.UserID, nil
}

// LinkWithToken links the platform account to the owner of token.
func (s *Service) LinkWithToken(ctx context.Context, token string, params LinkParams) (*BotUser, error) {
	if strings.TrimSpace(params.PlatformUserID) == "" {
		return nil, ErrPlatformUserIDRequired
	}

	if !params.Platform.Valid() {
		return nil, ErrInvalidPlatform
	}

	userID, err := s.VerifyLinkToken(ctx, token)
	if err != nil {
		return nil, err
	}

	params.UserID = userID

	return s.Link(ctx, params)
}

// Resolve returns the active bot user behind a platform account.
func (s *Service) Resolve(ctx context.Context, platform Platform, platformUserID string) (*BotUser, error) {
	u, err := s.repo.FindByPlatformUser(ctx, platform, platformUserID)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactive
	}

	return u, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*BotUser, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) owned(ctx context.Context, userID string, id uuid.UUID) (*BotUser, error) {
	u, err := s.repo.GetBotUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.UserID != userID {
		return nil, ErrUnauthorized
	}

	return u, nil
}

func (s *Service) Unlink(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeleteBotUser(ctx, id)
}

func (s *Service) SetActive(ctx context.Context, userID string, id uuid.UUID, active bool) (*BotUser, error) {
	u, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	u.IsActive = active
	u.UpdatedAt = new(s.now())

	if err := s.repo.UpdateBotUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
