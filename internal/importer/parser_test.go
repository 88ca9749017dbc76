package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"25000", 25_000},
		{"50.000", 50_000},
		{"1.250.000", 1_250_000},
		{"1.250.000,50", 1_250_001},
		{"50,000", 50_000},
		{"1,250,000.25", 1_250_000},
		{"Rp 75.000", 75_000},
		{"-25.000", -25_000},
		{"12,5", 13},
		{"7.5", 8},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := importer.ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := importer.ParseAmount("lima ribu")
	assert.Error(t, err)
}

func TestCSVParser_English(t *testing.T) {
	csv := `Date,Type,Category,Amount,Note
2024-03-02,expense,makan,25000,"nasi padang, es teh"
2024-03-01,income,gaji,5000000,
`

	txs, err := importer.NewCSVParser(time.UTC).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2024, 3, 2), txs[0].CreatedAt)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, "makan", txs[0].Category)
	assert.Equal(t, int64(25_000), txs[0].Amount)
	assert.Equal(t, "nasi padang, es teh", txs[0].Note)

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.Equal(t, int64(5_000_000), txs[1].Amount)
	assert.Empty(t, txs[1].Note)
}

func TestCSVParser_IndonesianSemicolon(t *testing.T) {
	csv := `Laporan Keuangan Maret 2024

Tanggal;Tipe;Kategori;Jumlah;Catatan
05/03/2024;Pengeluaran;Transportasi;Rp 150.000;bensin
10/03/2024;Pemasukan;Bonus;1.250.000;
;;;Total;1.100.000
`

	txs, err := importer.NewCSVParser(time.UTC).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2024, 3, 5), txs[0].CreatedAt)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, "Transportasi", txs[0].Category)
	assert.Equal(t, int64(150_000), txs[0].Amount)
	assert.Equal(t, "bensin", txs[0].Note)

	assert.Equal(t, date(2024, 3, 10), txs[1].CreatedAt)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.Equal(t, int64(1_250_000), txs[1].Amount)
}

func TestCSVParser_SignDecidesEmptyType(t *testing.T) {
	csv := "Tanggal;Jenis;Kategori;Jumlah\n01-02-2024;;Belanja;-80.000\n02-02-2024;;Freelance;300.000\n"

	txs, err := importer.NewCSVParser(nil).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, int64(80_000), txs[0].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestCSVParser_Latin1(t *testing.T) {
	var buf bytes.Buffer

	w := charmap.Windows1252.NewEncoder().Writer(&buf)
	_, err := w.Write([]byte("Date;Type;Category;Amount;Note\n2024-01-15;expense;Café;35.000;kopi susu\n"))
	require.NoError(t, err)

	txs, err := importer.NewCSVParser(time.UTC).Parse(&buf)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Café", txs[0].Category)
	assert.Equal(t, int64(35_000), txs[0].Amount)
}

func TestCSVParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "UnknownHeader",
			csv:     "Data mov.;Descrição;Montante\n30-01-2026;X;-10,00\n",
			wantErr: importer.ErrUnknownFormat,
		},
		{
			name:    "MissingCategory",
			csv:     "Date,Type,Category,Amount\n2024-03-01,expense,,1000\n",
			wantErr: importer.ErrInvalidRow,
			wantMsg: "row 2: missing category",
		},
		{
			name:    "BadType",
			csv:     "Date,Type,Category,Amount\n2024-03-01,transfer,bank,1000\n",
			wantErr: importer.ErrInvalidRow,
			wantMsg: `unknown type "transfer"`,
		},
		{
			name:    "BadAmount",
			csv:     "Date,Type,Category,Amount\n2024-03-01,expense,makan,banyak\n",
			wantErr: importer.ErrInvalidRow,
			wantMsg: `invalid amount "banyak"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewCSVParser(time.UTC).Parse(strings.NewReader(tt.csv))
			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
