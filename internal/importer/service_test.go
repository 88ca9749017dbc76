package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
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
		out[i] = &transaction.Transaction{ID: uuid.New(), UserID: p.UserID, Type: p.Type, Amount: p.Amount, Category: p.Category}
	}

	return out, nil
}

type fakeMatcher struct {
	byName map[string]*category.Category
	err    error
}

func (f *fakeMatcher) Match(_ context.Context, _, name string, _ transaction.Type) (*category.Category, error) {
	return f.byName[name], f.err
}

const sample = "Date,Type,Category,Amount,Note\n2024-03-02,expense,makan,25000,\n2024-03-03,expense,parkir,5000,\n"

func TestService_Import(t *testing.T) {
	food := &category.Category{ID: uuid.New(), Name: "Makanan"}

	batcher := &fakeBatcher{}
	matcher := &fakeMatcher{byName: map[string]*category.Category{"makan": food}}

	svc := importer.NewService(importer.NewCSVParser(time.UTC), batcher, matcher)

	txs, err := svc.Import(context.Background(), "user-1", strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	require.Len(t, batcher.got, 2)
	assert.Equal(t, "user-1", batcher.got[0].UserID)
	assert.Equal(t, &food.ID, batcher.got[0].CategoryID)
	assert.Nil(t, batcher.got[1].CategoryID)
}

func TestService_Import_MatcherErrorIsIgnored(t *testing.T) {
	batcher := &fakeBatcher{}
	svc := importer.NewService(importer.NewCSVParser(time.UTC), batcher, &fakeMatcher{err: errors.New("db down")})

	txs, err := svc.Import(context.Background(), "user-1", strings.NewReader(sample))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_Import_Errors(t *testing.T) {
	svc := importer.NewService(importer.NewCSVParser(time.UTC), &fakeBatcher{}, nil)

	_, err := svc.Import(context.Background(), " ", strings.NewReader(sample))
	assert.ErrorIs(t, err, importer.ErrUserIDRequired)

	_, err = svc.Import(context.Background(), "user-1", strings.NewReader("Date,Type,Category,Amount\n"))
	assert.ErrorIs(t, err, importer.ErrNoTransactions)
}
