package insight

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/aggregate"
	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var (
	ErrUserIDRequired = apperr.Validation("user id is required")
	ErrInvalidPeriod  = apperr.Validation("invalid period, use current_month, last_3_months or last_6_months")
)

const (
	stableBand          = 5.0
	significantIncrease = 20.0
	topCategoryShare    = 50.0
	healthySavingsRate  = 10.0
	otherCategory       = "Other"
)

type TransactionLister interface {
	ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, error)
}

type Service struct {
	txs TransactionLister
	now func() time.Time
}

func NewService(txs TransactionLister) *Service {
	return &Service{txs: txs, now: time.Now}
}

// Generate derives insights and recommendations for the period ending now.
func (s *Service) Generate(ctx context.Context, userID string, period Period) (*FinancialInsight, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	back, ok := period.monthsBack()
	if !ok {
		return nil, ErrInvalidPeriod
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month()-time.Month(back), 1, 0, 0, 0, 0, now.Location())

	result := &FinancialInsight{UserID: userID, Period: period, GeneratedAt: now}

	txs, err := s.txs.ListByPeriod(ctx, userID, start, now)
	if err != nil {
		return nil, fmt.Errorf("listing period transactions: %w", err)
	}

	if len(txs) == 0 {
		return result, nil
	}

	totals := aggregate.SumByType(txs)

	trend, err := s.spendingTrend(ctx, userID, start, totals.Expense)
	if err != nil {
		return nil, err
	}

	if trend != nil {
		result.Insights = append(result.Insights, trend.insight)
		if trend.recommendation != nil {
			result.Recommendations = append(result.Recommendations, *trend.recommendation)
		}
	}

	if top := topCategory(txs, totals.Expense); top != nil {
		result.Insights = append(result.Insights, *top)
	}

	if savings := savingsRate(totals); savings != nil {
		result.Insights = append(result.Insights, savings.insight)
		if savings.recommendation != nil {
			result.Recommendations = append(result.Recommendations, *savings.recommendation)
		}
	}

	return result, nil
}

type finding struct {
	insight        Insight
	recommendation *Recommendation
}

// spendingTrend compares current spending with the calendar month before start.
func (s *Service) spendingTrend(ctx context.Context, userID string, start time.Time, current int64) (*finding, error) {
	prevStart := start.AddDate(0, -1, 0)
	prevEnd := start.Add(-time.Nanosecond)

	prevTxs, err := s.txs.ListByPeriod(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("listing previous month transactions: %w", err)
	}

	previous := aggregate.SumByType(prevTxs).Expense
	if previous == 0 {
		return nil, nil
	}

	change := float64(current-previous) / float64(previous) * 100

	trend, severity, word := TrendStable, SeverityInfo, "similar to"

	switch {
	case change > stableBand:
		trend, word = TrendUp, "higher"
		if change > significantIncrease {
			severity = SeverityWarning
		}
	case change < -stableBand:
		trend, word = TrendDown, "lower"
	}

	f := &finding{insight: Insight{
		Kind:        KindSpendingTrend,
		Title:       "Spending Trend",
		Description: fmt.Sprintf("Your spending this month is %.1f%% %s last month", math.Abs(change), word),
		Value:       current,
		Trend:       trend,
		Severity:    severity,
	}}

	if trend == TrendUp && change > significantIncrease {
		f.recommendation = &Recommendation{
			Kind:  RecommendReduceSpending,
			Title: "Consider Reducing Spending",
			Description: fmt.Sprintf(
				"Your spending has increased significantly (%.1f%%). Review your recent expenses and identify areas to cut back.",
				change,
			),
			PotentialSavings: current - previous,
		}
	}

	return f, nil
}

// topCategory groups expenses by their raw category text. Ties go to the
// category seen first.
func topCategory(txs []*transaction.Transaction, totalExpense int64) *Insight {
	if totalExpense == 0 {
		return nil
	}

	totals := make(map[string]int64)

	var order []string

	for _, tx := range aggregate.FilterByType(txs, transaction.TypeExpense) {
		name := tx.Category
		if name == "" {
			name = otherCategory
		}

		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}

		totals[name] += tx.Amount
	}

	var (
		top       string
		topAmount int64
	)

	for _, name := range order {
		if totals[name] > topAmount {
			top, topAmount = name, totals[name]
		}
	}

	share := float64(topAmount) / float64(totalExpense) * 100

	severity := SeverityInfo
	if share > topCategoryShare {
		severity = SeverityWarning
	}

	return &Insight{
		Kind:        KindTopCategory,
		Title:       "Top Spending Category",
		Description: fmt.Sprintf("%s is your largest expense (%.1f%% of total spending)", top, share),
		Value:       topAmount,
		Severity:    severity,
	}
}

func savingsRate(totals aggregate.Totals) *finding {
	if totals.Income == 0 {
		return nil
	}

	savings := totals.Balance()
	rate := float64(savings) / float64(totals.Income) * 100

	severity := SeverityInfo

	switch {
	case rate < 0:
		severity = SeverityCritical
	case rate < healthySavingsRate:
		severity = SeverityWarning
	}

	f := &finding{insight: Insight{
		Kind:        KindSavingsRate,
		Title:       "Savings Rate",
		Description: fmt.Sprintf("You're saving %.1f%% of your income", rate),
		Value:       savings,
		Severity:    severity,
	}}

	if rate >= 0 && rate < healthySavingsRate {
		f.recommendation = &Recommendation{
			Kind:        RecommendSaveMore,
			Title:       "Improve Your Savings",
			Description: "Try to save at least 20% of your income. Look for areas to reduce expenses.",
			Action:      "Review your budget and identify non-essential expenses",
		}
	}

	return f
}
