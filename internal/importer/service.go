package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type TransactionBatcher interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type CategoryMatcher interface {
	Match(ctx context.Context, userID, name string, typ transaction.Type) (*category.Category, error)
}

type Service struct {
	parser  Parser
	txs     TransactionBatcher
	matcher CategoryMatcher
}

func NewService(parser Parser, txs TransactionBatcher, matcher CategoryMatcher) *Service {
	return &Service{parser: parser, txs: txs, matcher: matcher}
}

// Import parses r and stores every row for userID in one batch. Rows are
// linked to the user's categories when the matcher finds one.
func (s *Service) Import(ctx context.Context, userID string, r io.Reader) ([]*transaction.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return nil, ErrNoTransactions
	}

	for i := range params {
		params[i].UserID = userID

		if s.matcher == nil {
			continue
		}

		cat, err := s.matcher.Match(ctx, userID, params[i].Category, params[i].Type)
		if err != nil {
			slog.Error("failed to match category", "user_id", userID, "category", params[i].Category, "error", err)
			continue
		}

		if cat != nil {
			params[i].CategoryID = &cat.ID
		}
	}

	return s.txs.CreateBatch(ctx, params)
}
