package httpx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Validation", apperr.Validation("amount must be greater than 0"), http.StatusBadRequest, `{"error":"amount must be greater than 0"}`},
		{"NotFound", fmt.Errorf("wrapped: %w", apperr.NotFound("budget not found")), http.StatusNotFound, `{"error":"wrapped: budget not found"}`},
		{"Unauthorized", apperr.Unauthorized("budget belongs to another user"), http.StatusForbidden, `{"error":"budget belongs to another user"}`},
		{"Conflict", apperr.Conflict("already linked"), http.StatusConflict, `{"error":"already linked"}`},
		{"Internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpx.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestDateRange(t *testing.T) {
	now := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	from, to, err := httpx.DateRange(r, time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999_999_999, time.UTC), to)

	r = httptest.NewRequest(http.MethodGet, "/?from=2024-01-10&to=2024-01-20", nil)
	from, to, err = httpx.DateRange(r, time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 20, 23, 59, 59, 999_999_999, time.UTC), to)

	r = httptest.NewRequest(http.MethodGet, "/?from=10-01-2024", nil)
	_, _, err = httpx.DateRange(r, time.UTC, now)
	assert.ErrorIs(t, err, httpx.ErrInvalidDate)
}
