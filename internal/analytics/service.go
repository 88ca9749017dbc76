package analytics

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var (
	ErrUserIDRequired   = apperr.Validation("user id is required")
	ErrInvalidDateRange = apperr.Validation("invalid date range: from date must be before to date")
	ErrInvalidPeriod    = apperr.Validation("invalid period, use daily, weekly or monthly")
)

type TransactionLister interface {
	ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, error)
}

type CategoryLister interface {
	List(ctx context.Context, userID string) ([]*category.Category, error)
}

type Service struct {
	txs  TransactionLister
	cats CategoryLister
}

func NewService(txs TransactionLister, cats CategoryLister) *Service {
	return &Service{txs: txs, cats: cats}
}

func validUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUserIDRequired
	}

	return nil
}

// fetch loads the period's transactions and the user's categories concurrently.
func (s *Service) fetch(ctx context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, []*category.Category, error) {
	var (
		txs  []*transaction.Transaction
		cats []*category.Category
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		txs, err = s.txs.ListByPeriod(gctx, userID, from, to)

		return err
	})

	g.Go(func() error {
		var err error
		cats, err = s.cats.List(gctx, userID)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return txs, cats, nil
}
