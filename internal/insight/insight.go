package insight

import "time"

type Period string

const (
	PeriodCurrentMonth Period = "current_month"
	PeriodLast3Months  Period = "last_3_months"
	PeriodLast6Months  Period = "last_6_months"
)

// monthsBack is how many whole months before the current one a period spans.
func (p Period) monthsBack() (int, bool) {
	switch p {
	case PeriodCurrentMonth:
		return 0, true
	case PeriodLast3Months:
		return 3, true
	case PeriodLast6Months:
		return 6, true
	}

	return 0, false
}

type Kind string

const (
	KindSpendingTrend Kind = "spending_trend"
	KindTopCategory   Kind = "top_category"
	KindSavingsRate   Kind = "savings_rate"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Insight struct {
	Kind        Kind
	Title       string
	Description string
	Value       int64
	Trend       Trend // only set for spending trend insights
	Severity    Severity
}

type RecommendationKind string

const (
	RecommendReduceSpending RecommendationKind = "reduce_spending"
	RecommendSaveMore       RecommendationKind = "save_more"
)

type Recommendation struct {
	Kind             RecommendationKind
	Title            string
	Description      string
	Action           string
	PotentialSavings int64
}

type FinancialInsight struct {
	UserID          string
	Period          Period
	Insights        []Insight
	Recommendations []Recommendation
	GeneratedAt     time.Time
}
