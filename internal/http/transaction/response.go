package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type transactionResponse struct {
	ID         uuid.UUID        `json:"id"`
	Type       transaction.Type `json:"type"`
	Amount     int64            `json:"amount"`
	Category   string           `json:"category"`
	CategoryID *uuid.UUID       `json:"category_id,omitempty"`
	Note       string           `json:"note,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		Type:       tx.Type,
		Amount:     tx.Amount,
		Category:   tx.Category,
		CategoryID: tx.CategoryID,
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
