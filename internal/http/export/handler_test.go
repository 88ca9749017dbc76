package export_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/export"
	exporthttp "github.com/MrJamesThe3rd/dompetku/internal/http/export"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeLister struct {
	userID   string
	from, to time.Time
	txs      []*transaction.Transaction
	err      error
}

func (f *fakeLister) ListByPeriod(_ context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, error) {
	f.userID, f.from, f.to = userID, from, to
	return f.txs, f.err
}

func serve(lister *fakeLister, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/export", exporthttp.NewHandler(export.NewService(lister), jakarta).Routes)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithUserID(req.Context(), "user-1")))

	return rec
}

func TestHandler_Download(t *testing.T) {
	lister := &fakeLister{txs: []*transaction.Transaction{
		{Type: transaction.TypeExpense, Amount: 25_000, Category: "makan", Note: "nasi padang", CreatedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, jakarta)},
		{Type: transaction.TypeIncome, Amount: 8_000_000, Category: "gaji", CreatedAt: time.Date(2024, 3, 25, 9, 0, 0, 0, jakarta)},
	}}

	rec := serve(lister, "/export/?from=2024-03-01&to=2024-03-31")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions_20240301_20240331.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("X-Transaction-Count"))
	assert.Equal(t,
		"Date,Type,Category,Amount,Note\n2024-03-02,expense,makan,25000,nasi padang\n2024-03-25,income,gaji,8000000,\n",
		rec.Body.String())

	assert.Equal(t, "user-1", lister.userID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, jakarta), lister.from)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, jakarta).Add(-time.Nanosecond), lister.to)
}

func TestHandler_Download_Errors(t *testing.T) {
	t.Run("BadDate", func(t *testing.T) {
		rec := serve(&fakeLister{}, "/export/?from=01-03-2024")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		rec := serve(&fakeLister{err: errors.New("db down")}, "/export/")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal error")
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})
}
