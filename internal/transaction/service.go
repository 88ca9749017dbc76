package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*Transaction, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Transaction, error)
}

// CategoryVerifier fails with a not found error unless the category belongs
// to the user.
type CategoryVerifier interface {
	Verify(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
	cats CategoryVerifier
	now  func() time.Time
}

type Option func(*Service)

// WithCategoryVerifier rejects category ids the user does not own on create
// and update.
func WithCategoryVerifier(v CategoryVerifier) Option {
	return func(s *Service) {
		s.cats = v
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) verifyCategory(ctx context.Context, userID string, id *uuid.UUID) error {
	if s.cats == nil || id == nil {
		return nil
	}

	return s.cats.Verify(ctx, userID, *id)
}

type CreateParams struct {
	UserID     string
	Type       Type
	Amount     int64
	Category   string
	CategoryID *uuid.UUID
	Note       string
	CreatedAt  time.Time // zero means now
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	Type       *Type
	Amount     *int64
	Category   *string
	CategoryID *uuid.UUID
	Note       *string
	CreatedAt  *time.Time
}

func (p UpdateParams) empty() bool {
	return p.Type == nil && p.Amount == nil && p.Category == nil &&
		p.CategoryID == nil && p.Note == nil && p.CreatedAt == nil
}

type SearchFilter struct {
	UserID     string
	Query      string
	Type       *Type
	CategoryID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *int64
	AmountMax  *int64
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Amount <= 0 {
		return ErrAmountMustBePositive
	}

	if strings.TrimSpace(p.Category) == "" {
		return ErrCategoryRequired
	}

	return nil
}

func (s *Service) newTransaction(p CreateParams) *Transaction {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	return &Transaction{
		UserID:     p.UserID,
		Type:       p.Type,
		Amount:     p.Amount,
		Category:   strings.TrimSpace(p.Category),
		CategoryID: p.CategoryID,
		Note:       strings.TrimSpace(p.Note),
		CreatedAt:  createdAt,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := s.verifyCategory(ctx, params.UserID, params.CategoryID); err != nil {
		return nil, err
	}

	tx := s.newTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every entry before writing any of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))
	verified := make(map[string]bool)

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		if p.CategoryID != nil {
			key := p.UserID + "/" + p.CategoryID.String()
			if !verified[key] {
				if err := s.verifyCategory(ctx, p.UserID, p.CategoryID); err != nil {
					return nil, fmt.Errorf("entry %d: %w", i+1, err)
				}

				verified[key] = true
			}
		}

		txs[i] = s.newTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

// Get returns the transaction if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != userID {
		return nil, ErrUnauthorized
	}

	return tx, nil
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	if params.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	if params.Type != nil && !params.Type.Valid() {
		return nil, ErrInvalidType
	}

	if params.Amount != nil && *params.Amount <= 0 {
		return nil, ErrAmountMustBePositive
	}

	if params.Category != nil && strings.TrimSpace(*params.Category) == "" {
		return nil, ErrCategoryRequired
	}

	tx, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.verifyCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}

	if params.Type != nil {
		tx.Type = *params.Type
	}

	if params.Amount != nil {
		tx.Amount = *params.Amount
	}

	if params.Category != nil {
		tx.Category = strings.TrimSpace(*params.Category)
	}

	if params.CategoryID != nil {
		tx.CategoryID = params.CategoryID
	}

	if params.Note != nil {
		tx.Note = strings.TrimSpace(*params.Note)
	}

	if params.CreatedAt != nil {
		tx.CreatedAt = *params.CreatedAt
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeleteTransaction(ctx, id)
}

// ListByPeriod returns the user's transactions in [from, to], newest first.
func (s *Service) ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	return s.repo.ListByPeriod(ctx, userID, from, to)
}

func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]*Transaction, error) {
	if strings.TrimSpace(filter.UserID) == "" {
		return nil, ErrUserIDRequired
	}

	if filter.Type != nil && !filter.Type.Valid() {
		return nil, ErrInvalidType
	}

	if (filter.AmountMin != nil && *filter.AmountMin < 0) || (filter.AmountMax != nil && *filter.AmountMax < 0) {
		return nil, ErrNegativeAmountFilter
	}

	if filter.AmountMin != nil && filter.AmountMax != nil && *filter.AmountMin > *filter.AmountMax {
		return nil, ErrInvalidAmountRange
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, ErrInvalidDateRange
	}

	filter.Query = strings.TrimSpace(filter.Query)

	return s.repo.Search(ctx, filter)
}
