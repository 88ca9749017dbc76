// Package importer reads transactions from CSV files in the export format,
// with English or Indonesian headers.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var (
	ErrUserIDRequired = apperr.Validation("user id is required")
	ErrUnknownFormat  = apperr.Validation("no matching CSV format found: expected columns Date,Type,Category,Amount or Tanggal,Tipe,Kategori,Jumlah")
	ErrInvalidRow     = apperr.Validation("invalid csv row")
	ErrNoTransactions = apperr.Validation("no transactions found in file")
)

// Parser turns a file into transaction params without a user id.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
