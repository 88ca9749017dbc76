package recurring_test

import (
	"context"
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
	recurringhttp "github.com/MrJamesThe3rd/dompetku/internal/http/recurring"
	"github.com/MrJamesThe3rd/dompetku/internal/recurring"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func serve(repo recurring.Repository, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/recurring", recurringhttp.NewHandler(recurring.NewService(repo, nil), jakarta).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *recurring.MockRepository)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"type":"expense","amount":150000,"category":"internet","frequency":"monthly","start_date":"2024-01-05"}`,
			setupMock: func(m *recurring.MockRepository) {
				m.EXPECT().
					CreateTemplate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tpl *recurring.Template) error {
						assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, jakarta), tpl.StartDate)
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"start_date":"2024-01-05","next_date":"2024-01-05","is_active":true`,
		},
		{
			name:       "BadDate",
			body:       `{"type":"expense","amount":150000,"category":"internet","frequency":"monthly","start_date":"5 Jan"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid request body`,
		},
		{
			name:       "Yearly",
			body:       `{"type":"expense","amount":150000,"category":"internet","frequency":"yearly","start_date":"2024-01-05"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid frequency`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := recurring.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(repo, httptest.NewRequest(http.MethodPost, "/recurring/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Deactivate(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().GetTemplate(gomock.Any(), id).Return(&recurring.Template{ID: id, UserID: "user-1", IsActive: true}, nil)
	repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)

	rec := serve(repo, httptest.NewRequest(http.MethodPost, "/recurring/"+id.String()+"/deactivate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)
}
