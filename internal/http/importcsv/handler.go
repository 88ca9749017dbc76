package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

const maxUploadSize = 10 << 20

var (
	errInvalidForm  = apperr.Validation("failed to parse multipart form")
	errFileRequired = apperr.Validation("file field is required")
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

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

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.Error(w, r, errInvalidForm)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, r, errFileRequired)
		return
	}
	defer file.Close()

	txs, err := h.svc.Import(r.Context(), auth.UserID(r), file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := importResponse{
		Imported:     len(txs),
		Transactions: make([]transactionResponse, len(txs)),
	}

	for i, tx := range txs {
		resp.Transactions[i] = transactionResponse{
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

	httpx.JSON(w, http.StatusCreated, resp)
}
