package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	// UpsertBudget inserts b or, when the user already has a budget for the
	// category, replaces its amount. b is updated with the stored row.
	UpsertBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	GetByCategory(ctx context.Context, userID string, categoryID uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type TransactionSearcher interface {
	Search(ctx context.Context, filter transaction.SearchFilter) ([]*transaction.Transaction, error)
}

// CategoryVerifier fails with a not found error unless the category belongs
// to the user.
type CategoryVerifier interface {
	Verify(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
	txs  TransactionSearcher
	cats CategoryVerifier
}

func NewService(repo Repository, txs TransactionSearcher, cats CategoryVerifier) *Service {
	return &Service{repo: repo, txs: txs, cats: cats}
}

type SetParams struct {
	UserID     string
	CategoryID uuid.UUID
	Amount     int64
}

type StatusQuery struct {
	UserID     string
	CategoryID uuid.UUID
	Start      time.Time
	End        time.Time
}

// Set creates the user's budget for the category or replaces its amount.
func (s *Service) Set(ctx context.Context, params SetParams) (*Budget, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, ErrUserIDRequired
	}

	if params.CategoryID == uuid.Nil {
		return nil, ErrCategoryIDRequired
	}

	if params.Amount <= 0 {
		return nil, ErrAmountMustBePositive
	}

	if err := s.cats.Verify(ctx, params.UserID, params.CategoryID); err != nil {
		return nil, err
	}

	b := &Budget{
		UserID:     params.UserID,
		CategoryID: params.CategoryID,
		Amount:     params.Amount,
		Period:     PeriodMonthly,
	}

	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Budget, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	if b.UserID != userID {
		return ErrUnauthorized
	}

	return s.repo.DeleteBudget(ctx, id)
}

func (q StatusQuery) validate() error {
	if strings.TrimSpace(q.UserID) == "" {
		return ErrUserIDRequired
	}

	if q.CategoryID == uuid.Nil {
		return ErrCategoryIDRequired
	}

	if q.Start.IsZero() {
		return ErrStartDateRequired
	}

	if q.End.IsZero() {
		return ErrEndDateRequired
	}

	if q.Start.After(q.End) {
		return ErrInvalidDateRange
	}

	return nil
}

// Status reports how much of the category budget was spent in [Start, End].
func (s *Service) Status(ctx context.Context, q StatusQuery) (*Status, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByCategory(ctx, q.UserID, q.CategoryID)
	if err != nil {
		return nil, err
	}

	return s.status(ctx, b, q.Start, q.End)
}

// ListStatuses computes the status of every budget the user has.
func (s *Service) ListStatuses(ctx context.Context, userID string, start, end time.Time) ([]*Status, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	budgets, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]*Status, len(budgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, b := range budgets {
		g.Go(func() error {
			st, err := s.status(gctx, b, start, end)
			if err != nil {
				return err
			}

			statuses[i] = st

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (s *Service) status(ctx context.Context, b *Budget, start, end time.Time) (*Status, error) {
	expense := transaction.TypeExpense

	txs, err := s.txs.Search(ctx, transaction.SearchFilter{
		UserID:     b.UserID,
		Type:       &expense,
		CategoryID: &b.CategoryID,
		DateFrom:   &start,
		DateTo:     &end,
	})
	if err != nil {
		return nil, fmt.Errorf("searching budget transactions: %w", err)
	}

	var spent int64
	for _, tx := range txs {
		spent += tx.Amount
	}

	percentage := money.Percent(spent, b.Amount)

	return &Status{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount - spent,
		Percentage: percentage,
		Level:      Classify(percentage),
	}, nil
}
