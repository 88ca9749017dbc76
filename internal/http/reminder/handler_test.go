package reminder_test

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
	reminderhttp "github.com/MrJamesThe3rd/dompetku/internal/http/reminder"
	"github.com/MrJamesThe3rd/dompetku/internal/reminder"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func serve(repo reminder.Repository, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/reminders", reminderhttp.NewHandler(reminder.NewService(repo, jakarta), jakarta).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *reminder.MockRepository)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"title":"Listrik PLN","amount":350000,"frequency":"monthly","next_due_date":"2024-06-20","reminder_days":3}`,
			setupMock: func(m *reminder.MockRepository) {
				m.EXPECT().
					CreateReminder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *reminder.Reminder) error {
						assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, jakarta), r.NextDueDate)
						assert.Equal(t, "user-1", r.UserID)
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"next_due_date":"2024-06-20"`,
		},
		{
			name:       "MissingDueDate",
			body:       `{"title":"Listrik PLN","amount":350000,"frequency":"monthly"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `due date is required`,
		},
		{
			name:       "MalformedJSON",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := reminder.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(repo, httptest.NewRequest(http.MethodPost, "/reminders/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Upcoming(t *testing.T) {
	t.Run("DefaultWindow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := reminder.NewMockRepository(ctrl)

		due := time.Now().AddDate(0, 0, 2)
		repo.EXPECT().
			ListDueBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, from, to time.Time) ([]*reminder.Reminder, error) {
				assert.True(t, to.After(from))
				return []*reminder.Reminder{{ID: uuid.New(), Title: "Internet", NextDueDate: due, IsActive: true}}, nil
			})

		rec := serve(repo, httptest.NewRequest(http.MethodGet, "/reminders/upcoming", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Internet"`)
		assert.Contains(t, rec.Body.String(), `"days_until_due":2`)
		assert.Contains(t, rec.Body.String(), `"is_overdue":false`)
	})

	t.Run("BadDays", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := serve(reminder.NewMockRepository(ctrl), httptest.NewRequest(http.MethodGet, "/reminders/upcoming?days=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ZeroDays", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := serve(reminder.NewMockRepository(ctrl), httptest.NewRequest(http.MethodGet, "/reminders/upcoming?days=0", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "days must be greater than 0")
	})
}

func TestHandler_MarkPaid(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		owner      string
		wantStatus int
	}{
		{name: "Success", owner: "user-1", wantStatus: http.StatusOK},
		{name: "OtherUser", owner: "user-2", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := reminder.NewMockRepository(ctrl)

			repo.EXPECT().GetReminder(gomock.Any(), id).Return(&reminder.Reminder{
				ID: id, UserID: tt.owner, Frequency: reminder.FrequencyWeekly,
				NextDueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, jakarta), IsActive: true,
			}, nil)

			if tt.wantStatus == http.StatusOK {
				repo.EXPECT().UpdateReminder(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := serve(repo, httptest.NewRequest(http.MethodPost, "/reminders/"+id.String()+"/paid", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"next_due_date":"2024-06-17"`)
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := reminder.NewMockRepository(ctrl)
	repo.EXPECT().GetReminder(gomock.Any(), id).Return(&reminder.Reminder{ID: id, UserID: "user-1"}, nil)
	repo.EXPECT().DeleteReminder(gomock.Any(), id).Return(nil)

	rec := serve(repo, httptest.NewRequest(http.MethodDelete, "/reminders/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
