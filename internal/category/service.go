package category

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	CreateCategories(ctx context.Context, cats []*Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID string, typ *transaction.Type) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID string
	Name   string
	Icon   string
	Color  string
	Type   transaction.Type
}

type UpdateParams struct {
	Name  *string
	Icon  *string
	Color *string
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}

	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}

	if strings.TrimSpace(p.Icon) == "" {
		return ErrIconRequired
	}

	if strings.TrimSpace(p.Color) == "" {
		return ErrColorRequired
	}

	if !hexColor.MatchString(p.Color) {
		return ErrInvalidColor
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	return nil
}

func (p UpdateParams) validate() error {
	if p.Name == nil && p.Icon == nil && p.Color == nil {
		return ErrNoFields
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}

	if p.Icon != nil && strings.TrimSpace(*p.Icon) == "" {
		return ErrIconRequired
	}

	if p.Color != nil && !hexColor.MatchString(*p.Color) {
		return ErrInvalidColor
	}

	return nil
}

func (s *Service) Add(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := &Category{
		UserID: params.UserID,
		Name:   strings.TrimSpace(params.Name),
		Icon:   params.Icon,
		Color:  params.Color,
		Type:   params.Type,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Category, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListCategories(ctx, userID, nil)
}

func (s *Service) ListByType(ctx context.Context, userID string, typ transaction.Type) ([]*Category, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	if !typ.Valid() {
		return nil, ErrInvalidType
	}

	return s.repo.ListCategories(ctx, userID, &typ)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.UserID != userID {
		return nil, ErrUnauthorized
	}

	return c, nil
}

// Verify returns ErrNotFound unless id names one of the user's categories.
// Categories owned by someone else are reported as missing.
func (s *Service) Verify(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrNotFound
		}

		return err
	}

	return nil
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params UpdateParams) (*Category, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Icon != nil {
		c.Icon = *params.Icon
	}

	if params.Color != nil {
		c.Color = *params.Color
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if c.IsDefault {
		return ErrDefaultLocked
	}

	return s.repo.DeleteCategory(ctx, id)
}

// InitializeDefaults seeds the default categories once. A user who already has
// default categories gets their current list back unchanged.
func (s *Service) InitializeDefaults(ctx context.Context, userID string) ([]*Category, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, c := range existing {
		if c.IsDefault {
			return existing, nil
		}
	}

	cats := Defaults(userID)
	if err := s.repo.CreateCategories(ctx, cats); err != nil {
		return nil, err
	}

	return cats, nil
}
