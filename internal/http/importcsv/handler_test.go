package importcsv_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/importcsv"
	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type fakeBatcher struct {
	got []transaction.CreateParams
}

func (f *fakeBatcher) CreateBatch(_ context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	f.got = params

	out := make([]*transaction.Transaction, len(params))
	for i, p := range params {
		out[i] = &transaction.Transaction{
			ID: uuid.New(), UserID: p.UserID, Type: p.Type, Amount: p.Amount, Category: p.Category, CreatedAt: p.CreatedAt,
		}
	}

	return out, nil
}

func upload(t *testing.T, field, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(field, "mutasi.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req.WithContext(auth.WithUserID(req.Context(), "user-1"))
}

func serve(batcher *fakeBatcher, req *http.Request) *httptest.ResponseRecorder {
	svc := importer.NewService(importer.NewCSVParser(time.UTC), batcher, nil)

	r := chi.NewRouter()
	r.Route("/import", importcsv.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Import(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		content    string
		wantStatus int
		wantBody   string
		wantRows   int
	}{
		{
			name:       "Indonesian",
			field:      "file",
			content:    "Tanggal;Tipe;Kategori;Jumlah;Catatan\n02/03/2024;pengeluaran;makan;Rp 25.000;nasi\n25/03/2024;pemasukan;gaji;8.000.000;\n",
			wantStatus: http.StatusCreated,
			wantBody:   `"imported":2`,
			wantRows:   2,
		},
		{
			name:       "MissingFile",
			field:      "attachment",
			content:    "Date,Type,Category,Amount\n",
			wantStatus: http.StatusBadRequest,
			wantBody:   "file field is required",
		},
		{
			name:       "UnknownHeader",
			field:      "file",
			content:    "foo,bar\n1,2\n",
			wantStatus: http.StatusBadRequest,
			wantBody:   "no matching CSV format found",
		},
		{
			name:       "HeaderOnly",
			field:      "file",
			content:    "Date,Type,Category,Amount\n",
			wantStatus: http.StatusBadRequest,
			wantBody:   "no transactions found in file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batcher := &fakeBatcher{}

			rec := serve(batcher, upload(t, tt.field, tt.content))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Len(t, batcher.got, tt.wantRows)

			for _, p := range batcher.got {
				assert.Equal(t, "user-1", p.UserID)
			}
		})
	}
}

func TestHandler_Import_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/import/", strings.NewReader("Date,Type\n"))
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))

	rec := serve(&fakeBatcher{}, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to parse multipart form")
}
