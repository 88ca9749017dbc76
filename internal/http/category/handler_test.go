package category_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	cathttp "github.com/MrJamesThe3rd/dompetku/internal/http/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func serve(repo category.Repository, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/categories", cathttp.NewHandler(category.NewService(repo)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *category.MockRepository)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"name":"Kopi","icon":"☕","color":"#6F4E37","type":"expense"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"name":"Kopi"`,
		},
		{
			name:       "BadColor",
			body:       `{"name":"Kopi","icon":"☕","color":"brown","type":"expense"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid color format`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := category.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(repo, httptest.NewRequest(http.MethodPost, "/categories/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_ListByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	typ := transaction.TypeIncome
	repo.EXPECT().ListCategories(gomock.Any(), "user-1", &typ).Return([]*category.Category{
		{ID: uuid.New(), Name: "Gaji", Type: transaction.TypeIncome},
	}, nil)

	rec := serve(repo, httptest.NewRequest(http.MethodGet, "/categories/?type=income", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Gaji"`)
}

func TestHandler_DeleteDefault(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, UserID: "user-1", IsDefault: true}, nil)

	rec := serve(repo, httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"default categories cannot be deleted"}`, rec.Body.String())
}
