package analytics

import (
	"context"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/aggregate"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type CategoryQuery struct {
	UserID string
	From   time.Time
	To     time.Time
}

type CategoryAnalytics struct {
	ID               string
	Name             string
	Icon             string
	Color            string
	Type             transaction.Type
	TotalAmount      int64
	TransactionCount int
	Percentage       int
}

type Summary struct {
	TotalIncome        int64
	TotalExpense       int64
	Balance            int64
	IncomeByCategory   []CategoryAnalytics
	ExpenseByCategory  []CategoryAnalytics
	TopExpenseCategory *CategoryAnalytics
	TopIncomeCategory  *CategoryAnalytics
}

// Categories breaks the period down per category for both transaction types.
func (s *Service) Categories(ctx context.Context, q CategoryQuery) (*Summary, error) {
	if err := validUser(q.UserID); err != nil {
		return nil, err
	}

	if !q.From.Before(q.To) {
		return nil, ErrInvalidDateRange
	}

	txs, cats, err := s.fetch(ctx, q.UserID, q.From, q.To)
	if err != nil {
		return nil, err
	}

	lookup := aggregate.NewLookup(cats)
	totals := aggregate.SumByType(txs)

	summary := &Summary{
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Balance:      totals.Balance(),
		IncomeByCategory: breakdown(
			aggregate.FilterByType(txs, transaction.TypeIncome), lookup, transaction.TypeIncome, totals.Income,
		),
		ExpenseByCategory: breakdown(
			aggregate.FilterByType(txs, transaction.TypeExpense), lookup, transaction.TypeExpense, totals.Expense,
		),
	}

	if len(summary.ExpenseByCategory) > 0 {
		summary.TopExpenseCategory = &summary.ExpenseByCategory[0]
	}

	if len(summary.IncomeByCategory) > 0 {
		summary.TopIncomeCategory = &summary.IncomeByCategory[0]
	}

	return summary, nil
}

// breakdown returns the groups sorted by total, largest first. The sort is
// stable so equal totals keep discovery order.
func breakdown(txs []*transaction.Transaction, lookup *aggregate.Lookup, typ transaction.Type, total int64) []CategoryAnalytics {
	groups := aggregate.GroupByCategory(txs, lookup)

	out := make([]CategoryAnalytics, len(groups))
	for i, g := range groups {
		out[i] = CategoryAnalytics{
			ID:               g.Key,
			Name:             g.Name,
			Icon:             g.Icon,
			Color:            g.Color,
			Type:             typ,
			TotalAmount:      g.Total,
			TransactionCount: g.Count,
			Percentage:       money.Percent(g.Total, total),
		}
	}

	slices.SortStableFunc(out, func(a, b CategoryAnalytics) int {
		switch {
		case a.TotalAmount > b.TotalAmount:
			return -1
		case a.TotalAmount < b.TotalAmount:
			return 1
		}

		return 0
	})

	return out
}
