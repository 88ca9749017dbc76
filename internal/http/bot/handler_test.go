package bot_test

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
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	bothttp "github.com/MrJamesThe3rd/dompetku/internal/http/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type fakeTxs struct {
	created []transaction.CreateParams
}

func (f *fakeTxs) Create(_ context.Context, p transaction.CreateParams) (*transaction.Transaction, error) {
	f.created = append(f.created, p)
	return &transaction.Transaction{ID: uuid.New(), UserID: p.UserID, Type: p.Type, Amount: p.Amount, Category: p.Category}, nil
}

func newRouter(repo botuser.Repository, txs *fakeTxs) chi.Router {
	users := botuser.NewService(repo, time.Minute)
	h := bothttp.NewHandler(users, bot.NewProcessor(users, txs))

	r := chi.NewRouter()
	r.Route("/bot", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), "user-1")))
				})
			})
			h.Routes(r)
		})
		r.Group(h.BridgeRoutes)
	})

	return r
}

func do(r chi.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_CreateLinkToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := botuser.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateLinkToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *botuser.LinkToken) error {
			assert.Equal(t, "user-1", tok.UserID)
			assert.NotEmpty(t, tok.Token)
			return nil
		})

	rec := do(newRouter(repo, &fakeTxs{}), http.MethodPost, "/bot/link-token", "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"`)
	assert.Contains(t, rec.Body.String(), `"expires_at":"`)
}

func TestHandler_Link(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *botuser.MockRepository)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"token":"abc","platform":"telegram","platform_user_id":"123","platform_username":"budi"}`,
			setupMock: func(m *botuser.MockRepository) {
				m.EXPECT().ConsumeLinkToken(gomock.Any(), "abc").
					Return(&botuser.LinkToken{Token: "abc", UserID: "user-1", ExpiresAt: time.Now().Add(time.Minute)}, nil)
				m.EXPECT().FindByPlatformUser(gomock.Any(), botuser.PlatformTelegram, "123").Return(nil, botuser.ErrNotLinked)
				m.EXPECT().CreateBotUser(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"platform_username":"budi"`,
		},
		{
			name: "ExpiredToken",
			body: `{"token":"abc","platform":"telegram","platform_user_id":"123"}`,
			setupMock: func(m *botuser.MockRepository) {
				m.EXPECT().ConsumeLinkToken(gomock.Any(), "abc").
					Return(&botuser.LinkToken{Token: "abc", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Minute)}, nil)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "invalid or expired link token",
		},
		{
			name:       "UnknownPlatform",
			body:       `{"token":"abc","platform":"line","platform_user_id":"123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := botuser.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := do(newRouter(repo, &fakeTxs{}), http.MethodPost, "/bot/link", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Message(t *testing.T) {
	t.Run("CreatesTransaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := botuser.NewMockRepository(ctrl)
		repo.EXPECT().FindByPlatformUser(gomock.Any(), botuser.PlatformTelegram, "123").
			Return(&botuser.BotUser{UserID: "user-1", IsActive: true}, nil)

		txs := &fakeTxs{}

		rec := do(newRouter(repo, txs), http.MethodPost, "/bot/messages",
			`{"platform":"telegram","platform_user_id":"123","text":"makan siang 25k"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		require.Len(t, txs.created, 1)
		assert.Equal(t, "user-1", txs.created[0].UserID)
		assert.Equal(t, int64(25_000), txs.created[0].Amount)
	})

	t.Run("NotLinked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := botuser.NewMockRepository(ctrl)
		repo.EXPECT().FindByPlatformUser(gomock.Any(), botuser.PlatformTelegram, "999").Return(nil, botuser.ErrNotLinked)

		rec := do(newRouter(repo, &fakeTxs{}), http.MethodPost, "/bot/messages",
			`{"platform":"telegram","platform_user_id":"999","text":"makan 25k"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.Contains(t, rec.Body.String(), "please link your account first")
	})
}

func TestHandler_SetActive(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := botuser.NewMockRepository(ctrl)
	repo.EXPECT().GetBotUser(gomock.Any(), id).Return(&botuser.BotUser{ID: id, UserID: "user-1", IsActive: true}, nil)
	repo.EXPECT().UpdateBotUser(gomock.Any(), gomock.Any()).Return(nil)

	r := newRouter(repo, &fakeTxs{})

	rec := do(r, http.MethodPatch, "/bot/accounts/"+id.String(), `{"active":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)

	rec = do(r, http.MethodPatch, "/bot/accounts/"+id.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
