// Package export writes transactions as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var Header = []string{"Date", "Type", "Category", "Amount", "Note"}

const dateLayout = time.DateOnly

type TransactionLister interface {
	ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]*transaction.Transaction, error)
}

type Service struct {
	txs TransactionLister
}

func NewService(txs TransactionLister) *Service {
	return &Service{txs: txs}
}

// Export writes the user's transactions in [from, to] to w.
func (s *Service) Export(ctx context.Context, w io.Writer, userID string, from, to time.Time) (int, error) {
	txs, err := s.txs.ListByPeriod(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	if err := WriteCSV(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// WriteCSV writes the header followed by one row per transaction, in the
// order given.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{
			tx.CreatedAt.Format(dateLayout),
			string(tx.Type),
			tx.Category,
			strconv.FormatInt(tx.Amount, 10),
			tx.Note,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename is the suggested download name for an export of [from, to].
func Filename(from, to time.Time) string {
	return fmt.Sprintf("transactions_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
}
