package budget_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	budgethttp "github.com/MrJamesThe3rd/dompetku/internal/http/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func serve(repo budget.Repository, txs budget.TransactionSearcher, req *http.Request) *httptest.ResponseRecorder {
	return serveWith(repo, txs, nil, req)
}

func serveWith(repo budget.Repository, txs budget.TransactionSearcher, cats budget.CategoryVerifier, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/budgets", budgethttp.NewHandler(budget.NewService(repo, txs, cats), time.UTC).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Status(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name       string
		url        string
		setupMock  func(repo *budget.MockRepository, txs *budget.MockTransactionSearcher)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Warning",
			url:  "/budgets/status/" + categoryID.String() + "?from=2024-03-01&to=2024-03-31",
			setupMock: func(repo *budget.MockRepository, txs *budget.MockTransactionSearcher) {
				repo.EXPECT().GetByCategory(gomock.Any(), "user-1", categoryID).Return(&budget.Budget{
					ID: uuid.New(), UserID: "user-1", CategoryID: categoryID, Amount: 1_000_000, Period: budget.PeriodMonthly,
				}, nil)
				txs.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
					{Amount: 500_000}, {Amount: 300_000},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"spent":800000,"remaining":200000,"percentage":80,"status":"warning"`,
		},
		{
			name: "NoBudget",
			url:  "/budgets/status/" + categoryID.String(),
			setupMock: func(repo *budget.MockRepository, _ *budget.MockTransactionSearcher) {
				repo.EXPECT().GetByCategory(gomock.Any(), "user-1", categoryID).Return(nil, budget.ErrBudgetNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `budget not found`,
		},
		{
			name:       "BadRange",
			url:        "/budgets/status/" + categoryID.String() + "?from=2024-03-31&to=2024-03-01",
			wantStatus: http.StatusBadRequest,
			wantBody:   `start date must be before end date`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := budget.NewMockRepository(ctrl)
			txs := budget.NewMockTransactionSearcher(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, txs)
			}

			rec := serve(repo, txs, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Set(t *testing.T) {
	categoryID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := budget.NewMockRepository(ctrl)
	cats := budget.NewMockCategoryVerifier(ctrl)
	txs := budget.NewMockTransactionSearcher(ctrl)

	cats.EXPECT().Verify(gomock.Any(), "user-1", categoryID).Return(nil)
	repo.EXPECT().UpsertBudget(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"category_id":"` + categoryID.String() + `","amount":2000000}`
	rec := serveWith(repo, txs, cats, httptest.NewRequest(http.MethodPut, "/budgets/", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amount":2000000,"period":"monthly"`)

	rec = serveWith(repo, txs, cats, httptest.NewRequest(http.MethodPut, "/budgets/", strings.NewReader(`{"amount":5}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Set_UnknownCategory(t *testing.T) {
	categoryID := uuid.New()

	ctrl := gomock.NewController(t)
	cats := budget.NewMockCategoryVerifier(ctrl)
	cats.EXPECT().Verify(gomock.Any(), "user-1", categoryID).Return(category.ErrNotFound)

	body := `{"category_id":"` + categoryID.String() + `","amount":2000000}`
	rec := serveWith(budget.NewMockRepository(ctrl), budget.NewMockTransactionSearcher(ctrl), cats,
		httptest.NewRequest(http.MethodPut, "/budgets/", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not found")
}
