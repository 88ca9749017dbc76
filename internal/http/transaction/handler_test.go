package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	txhttp "github.com/MrJamesThe3rd/dompetku/internal/http/transaction"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func newRouter(repo transaction.Repository, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/transactions", txhttp.NewHandler(transaction.NewService(repo), time.UTC).Routes)

	return r
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *transaction.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"type":"expense","amount":25000,"category":"makan","note":"siang"}`,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, tx *transaction.Transaction) error {
						assert.Equal(t, "user-1", tx.UserID)
						tx.ID = uuid.MustParse("7d6f0c1e-2a4b-4c8d-9e0f-1a2b3c4d5e6f")

						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":"7d6f0c1e-2a4b-4c8d-9e0f-1a2b3c4d5e6f"`,
		},
		{
			name:       "ZeroAmount",
			body:       `{"type":"expense","amount":0,"category":"makan"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"amount must be greater than 0"}`,
		},
		{
			name:       "MalformedJSON",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := transaction.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter(repo, "user-1").ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Get_OtherUser(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id, UserID: "user-2"}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/"+id.String(), nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Get_NotFound(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"transaction not found"}`, rec.Body.String())
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 999_999_999, time.UTC)

	repo.EXPECT().ListByPeriod(gomock.Any(), "user-1", from, to).Return([]*transaction.Transaction{
		{ID: uuid.New(), Type: transaction.TypeIncome, Amount: 5_000_000, Category: "gaji", CreatedAt: from},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/?from=2024-03-01&to=2024-03-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "gaji", got[0]["category"])
}

func TestHandler_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	repo.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f transaction.SearchFilter) ([]*transaction.Transaction, error) {
			assert.Equal(t, "user-1", f.UserID)
			assert.Equal(t, "kopi", f.Query)
			require.NotNil(t, f.Type)
			assert.Equal(t, transaction.TypeExpense, *f.Type)
			require.NotNil(t, f.AmountMin)
			assert.Equal(t, int64(10_000), *f.AmountMin)
			require.NotNil(t, f.DateTo)
			assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999_999_999, time.UTC), *f.DateTo)

			return nil, nil
		})

	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/search?q=kopi&type=expense&min=10000&to=2024-03-10", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/search?min=100&max=10", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Update_NoFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	req := httptest.NewRequest(http.MethodPatch, "/transactions/"+uuid.NewString(), strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"no fields to update"}`, rec.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id, UserID: "user-1"}, nil)
	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/transactions/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(repo, "user-1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/transactions/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
