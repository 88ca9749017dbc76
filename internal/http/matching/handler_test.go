package matching_test

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
	matchinghttp "github.com/MrJamesThe3rd/dompetku/internal/http/matching"
	"github.com/MrJamesThe3rd/dompetku/internal/matching"
)

func serve(repo *matching.MockRepository, finder *matching.MockCategoryFinder, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/aliases", matchinghttp.NewHandler(matching.NewService(repo, finder)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Learn(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name       string
		body       string
		setupMock  func(repo *matching.MockRepository, finder *matching.MockCategoryFinder)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"alias":" Jajan ","category_id":"` + categoryID.String() + `"}`,
			setupMock: func(repo *matching.MockRepository, finder *matching.MockCategoryFinder) {
				finder.EXPECT().Get(gomock.Any(), "user-1", categoryID).Return(&category.Category{ID: categoryID}, nil)
				repo.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"alias":"jajan"`,
		},
		{
			name: "UnknownCategory",
			body: `{"alias":"jajan","category_id":"` + categoryID.String() + `"}`,
			setupMock: func(_ *matching.MockRepository, finder *matching.MockCategoryFinder) {
				finder.EXPECT().Get(gomock.Any(), "user-1", categoryID).Return(nil, category.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "MissingAlias",
			body:       `{"category_id":"` + categoryID.String() + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "alias is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)
			finder := matching.NewMockCategoryFinder(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, finder)
			}

			rec := serve(repo, finder, httptest.NewRequest(http.MethodPost, "/aliases/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "user-1")
		})
	}
}

func TestHandler_Suggest(t *testing.T) {
	categoryID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindMatch(gomock.Any(), "user-1", "jajan").Return(&categoryID, nil)

	rec := serve(repo, matching.NewMockCategoryFinder(ctrl), httptest.NewRequest(http.MethodGet, "/aliases/suggest?alias=Jajan", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), categoryID.String())
}

func TestHandler_Forget(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().DeleteMapping(gomock.Any(), "user-1", "jajan").Return(matching.ErrNotFound)

	rec := serve(repo, matching.NewMockCategoryFinder(ctrl), httptest.NewRequest(http.MethodDelete, "/aliases/jajan", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "alias not found")
}
