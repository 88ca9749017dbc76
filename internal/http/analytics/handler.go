package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompetku/internal/aggregate"
	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// defaultTrendMonths is the window of a trend request without "from".
const defaultTrendMonths = 6

type Handler struct {
	analytics *analytics.Service
	insights  *insight.Service
	loc       *time.Location
	now       func() time.Time
}

func NewHandler(analyticsSvc *analytics.Service, insightSvc *insight.Service, loc *time.Location) *Handler {
	return &Handler{analytics: analyticsSvc, insights: insightSvc, loc: loc, now: time.Now}
}

// Routes mounts the analytics endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.categories)
	r.Get("/trend", h.trend)
}

// InsightRoutes mounts the insights endpoint.
func (h *Handler) InsightRoutes(r chi.Router) {
	r.Get("/", h.generateInsights)
}

type categoryResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Icon             string           `json:"icon"`
	Color            string           `json:"color"`
	Type             transaction.Type `json:"type"`
	TotalAmount      int64            `json:"total_amount"`
	TransactionCount int              `json:"transaction_count"`
	Percentage       int              `json:"percentage"`
}

type summaryResponse struct {
	TotalIncome        int64              `json:"total_income"`
	TotalExpense       int64              `json:"total_expense"`
	Balance            int64              `json:"balance"`
	IncomeByCategory   []categoryResponse `json:"income_by_category"`
	ExpenseByCategory  []categoryResponse `json:"expense_by_category"`
	TopExpenseCategory *categoryResponse  `json:"top_expense_category"`
	TopIncomeCategory  *categoryResponse  `json:"top_income_category"`
}

func toCategoryList(in []analytics.CategoryAnalytics) []categoryResponse {
	out := make([]categoryResponse, len(in))
	for i, c := range in {
		out[i] = categoryResponse(c)
	}

	return out
}

func toCategoryPtr(c *analytics.CategoryAnalytics) *categoryResponse {
	if c == nil {
		return nil
	}

	return new(categoryResponse(*c))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	from, to, err := httpx.DateRange(r, h.loc, h.now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	s, err := h.analytics.Categories(r.Context(), analytics.CategoryQuery{
		UserID: auth.UserID(r),
		From:   from,
		To:     to,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, summaryResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpense:       s.TotalExpense,
		Balance:            s.Balance,
		IncomeByCategory:   toCategoryList(s.IncomeByCategory),
		ExpenseByCategory:  toCategoryList(s.ExpenseByCategory),
		TopExpenseCategory: toCategoryPtr(s.TopExpenseCategory),
		TopIncomeCategory:  toCategoryPtr(s.TopIncomeCategory),
	})
}

type trendPointResponse struct {
	Key     string `json:"key"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

type trendResponse struct {
	Period aggregate.Period     `json:"period"`
	Points []trendPointResponse `json:"points"`
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	period := aggregate.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = aggregate.PeriodMonthly
	}

	_, to, err := httpx.DateRange(r, h.loc, h.now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	from, err := httpx.QueryDate(r, "from", h.loc)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if from == nil {
		now := h.now().In(h.loc)
		from = new(time.Date(now.Year(), now.Month()-(defaultTrendMonths-1), 1, 0, 0, 0, 0, h.loc))
	}

	t, err := h.analytics.Trend(r.Context(), analytics.TrendQuery{
		UserID: auth.UserID(r),
		Start:  *from,
		End:    to,
		Period: period,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := trendResponse{Period: t.Period, Points: make([]trendPointResponse, len(t.Points))}
	for i, p := range t.Points {
		resp.Points[i] = trendPointResponse(p)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type insightResponse struct {
	Kind        insight.Kind     `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Value       int64            `json:"value"`
	Trend       insight.Trend    `json:"trend,omitempty"`
	Severity    insight.Severity `json:"severity"`
}

type recommendationResponse struct {
	Kind             insight.RecommendationKind `json:"type"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	Action           string                     `json:"action"`
	PotentialSavings int64                      `json:"potential_savings,omitempty"`
}

type financialInsightResponse struct {
	Period          insight.Period           `json:"period"`
	Insights        []insightResponse        `json:"insights"`
	Recommendations []recommendationResponse `json:"recommendations"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

func (h *Handler) generateInsights(w http.ResponseWriter, r *http.Request) {
	period := insight.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = insight.PeriodCurrentMonth
	}

	fi, err := h.insights.Generate(r.Context(), auth.UserID(r), period)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := financialInsightResponse{
		Period:          fi.Period,
		Insights:        make([]insightResponse, len(fi.Insights)),
		Recommendations: make([]recommendationResponse, len(fi.Recommendations)),
		GeneratedAt:     fi.GeneratedAt,
	}

	for i, in := range fi.Insights {
		resp.Insights[i] = insightResponse(in)
	}

	for i, rec := range fi.Recommendations {
		resp.Recommendations[i] = recommendationResponse(rec)
	}

	httpx.JSON(w, http.StatusOK, resp)
}
