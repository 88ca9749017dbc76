package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// DefaultMaxCatchUp bounds how many missed occurrences of one template a
// single run materializes.
const DefaultMaxCatchUp = 31

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recurring
type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, userID string) ([]*Template, error)
	// ListDue returns active templates of every user with next_date <= asOf.
	ListDue(ctx context.Context, asOf time.Time) ([]*Template, error)
	UpdateTemplate(ctx context.Context, t *Template) error
}

type TransactionBatcher interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

// CategoryVerifier fails with a not found error unless the category belongs
// to the user.
type CategoryVerifier interface {
	Verify(ctx context.Context, userID string, id uuid.UUID) error
}

// Transactor runs fn so that every store write made with its context commits
// or rolls back together.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo       Repository
	txs        TransactionBatcher
	cats       CategoryVerifier
	tx         Transactor
	maxCatchUp int
	now        func() time.Time
}

type Option func(*Service)

// WithCategoryVerifier rejects templates pointing at categories the user does
// not own.
func WithCategoryVerifier(v CategoryVerifier) Option {
	return func(s *Service) {
		s.cats = v
	}
}

// WithTransactor stores an occurrence batch and the template's new next date
// in one transaction.
func WithTransactor(t Transactor) Option {
	return func(s *Service) {
		s.tx = t
	}
}

func NewService(repo Repository, txs TransactionBatcher, opts ...Option) *Service {
	s := &Service{repo: repo, txs: txs, maxCatchUp: DefaultMaxCatchUp, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	UserID     string
	Type       transaction.Type
	Amount     int64
	Category   string
	CategoryID *uuid.UUID
	Note       string
	Frequency  Frequency
	StartDate  time.Time
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

	if !p.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if p.StartDate.IsZero() {
		return ErrStartDateRequired
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Template, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if s.cats != nil && params.CategoryID != nil {
		if err := s.cats.Verify(ctx, params.UserID, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	t := &Template{
		UserID:     params.UserID,
		Type:       params.Type,
		Amount:     params.Amount,
		Category:   strings.TrimSpace(params.Category),
		CategoryID: params.CategoryID,
		Note:       strings.TrimSpace(params.Note),
		Frequency:  params.Frequency,
		StartDate:  params.StartDate,
		NextDate:   params.StartDate,
		IsActive:   true,
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Template, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListTemplates(ctx, userID)
}

// Deactivate stops a template from producing further transactions.
func (s *Service) Deactivate(ctx context.Context, userID string, id uuid.UUID) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.UserID != userID {
		return nil, ErrUnauthorized
	}

	t.IsActive = false
	t.UpdatedAt = new(s.now())

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

type RunResult struct {
	Templates    int
	Transactions int
}

// ProcessDue creates the transactions of every occurrence due at asOf and
// moves each template's next date past asOf. A failing template does not stop
// the others; their errors are joined.
func (s *Service) ProcessDue(ctx context.Context, asOf time.Time) (RunResult, error) {
	var result RunResult

	due, err := s.repo.ListDue(ctx, asOf)
	if err != nil {
		return result, fmt.Errorf("listing due templates: %w", err)
	}

	var errs []error

	for _, t := range due {
		n, err := s.materialize(ctx, t, asOf)
		if err != nil {
			slog.Error("failed to process recurring transaction", "template_id", t.ID, "user_id", t.UserID, "error", err)
			errs = append(errs, fmt.Errorf("template %s: %w", t.ID, err))

			continue
		}

		result.Templates++
		result.Transactions += n
	}

	return result, errors.Join(errs...)
}

func (s *Service) materialize(ctx context.Context, t *Template, asOf time.Time) (int, error) {
	var params []transaction.CreateParams

	next := t.NextDate
	for !next.After(asOf) && len(params) < s.maxCatchUp {
		params = append(params, transaction.CreateParams{
			UserID:     t.UserID,
			Type:       t.Type,
			Amount:     t.Amount,
			Category:   t.Category,
			CategoryID: t.CategoryID,
			Note:       t.Note,
			CreatedAt:  next,
		})

		next = t.Frequency.Next(next, t.StartDate)
	}

	if len(params) == 0 {
		return 0, nil
	}

	prevNext, prevUpdated := t.NextDate, t.UpdatedAt
	t.NextDate = next
	t.UpdatedAt = new(s.now())

	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.txs.CreateBatch(ctx, params); err != nil {
			return err
		}

		return s.repo.UpdateTemplate(ctx, t)
	})
	if err != nil {
		t.NextDate, t.UpdatedAt = prevNext, prevUpdated
		return 0, err
	}

	return len(params), nil
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}

	return s.tx.RunInTx(ctx, fn)
}
