package matching

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

const (
	maxDistance = 2
	// fuzzyMinLength keeps short words like "bus" from matching "gas".
	fuzzyMinLength = 4
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category mapped to alias, or nil when none is.
	FindMatch(ctx context.Context, userID, alias string) (*uuid.UUID, error)
	// CreateMapping stores mapping, replacing the category of an existing alias.
	CreateMapping(ctx context.Context, mapping *Mapping) error
	ListMappings(ctx context.Context, userID string) ([]*Mapping, error)
	DeleteMapping(ctx context.Context, userID, alias string) error
}

type CategoryFinder interface {
	ListByType(ctx context.Context, userID string, typ transaction.Type) ([]*category.Category, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo Repository
	cats CategoryFinder
}

func NewService(repo Repository, cats CategoryFinder) *Service {
	return &Service{repo: repo, cats: cats}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match resolves free text to one of the user's categories of the given type.
// Learned aliases win over an exact name, which wins over the closest name
// within two edits. It returns nil when nothing is close enough.
func (s *Service) Match(ctx context.Context, userID, name string, typ transaction.Type) (*category.Category, error) {
	name = normalize(name)
	if name == "" {
		return nil, nil
	}

	cats, err := s.cats.ListByType(ctx, userID, typ)
	if err != nil {
		return nil, err
	}

	if len(cats) == 0 {
		return nil, nil
	}

	id, err := s.repo.FindMatch(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	if id != nil {
		for _, c := range cats {
			if c.ID == *id {
				return c, nil
			}
		}
	}

	for _, c := range cats {
		if normalize(c.Name) == name {
			return c, nil
		}
	}

	if utf8.RuneCountInString(name) < fuzzyMinLength {
		return nil, nil
	}

	var (
		best     *category.Category
		bestDist = maxDistance + 1
	)

	for _, c := range cats {
		if d := levenshtein.ComputeDistance(name, normalize(c.Name)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, nil
}

// Learn remembers that alias refers to the user's category.
func (s *Service) Learn(ctx context.Context, userID, alias string, categoryID uuid.UUID) (*Mapping, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	alias = normalize(alias)
	if alias == "" {
		return nil, ErrAliasRequired
	}

	if categoryID == uuid.Nil {
		return nil, ErrCategoryIDRequired
	}

	if _, err := s.cats.Get(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	m := &Mapping{UserID: userID, Alias: alias, CategoryID: categoryID}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Suggest returns the category an alias maps to, or nil.
func (s *Service) Suggest(ctx context.Context, userID, alias string) (*uuid.UUID, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	alias = normalize(alias)
	if alias == "" {
		return nil, ErrAliasRequired
	}

	return s.repo.FindMatch(ctx, userID, alias)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Mapping, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListMappings(ctx, userID)
}

func (s *Service) Forget(ctx context.Context, userID, alias string) error {
	alias = normalize(alias)
	if alias == "" {
		return ErrAliasRequired
	}

	return s.repo.DeleteMapping(ctx, userID, alias)
}
