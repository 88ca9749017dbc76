package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var (
	errInvalidAmountFilter = apperr.Validation("min and max must be whole numbers")
	errInvalidCategoryID   = apperr.Validation("invalid category_id")
)

type Handler struct {
	svc *transaction.Service
	loc *time.Location
}

func NewHandler(svc *transaction.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/search", h.search)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Type       transaction.Type `json:"type"`
	Amount     int64            `json:"amount"`
	Category   string           `json:"category"`
	CategoryID *uuid.UUID       `json:"category_id,omitempty"`
	Note       string           `json:"note,omitempty"`
	CreatedAt  *time.Time       `json:"created_at,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	params := transaction.CreateParams{
		UserID:     auth.UserID(r),
		Type:       req.Type,
		Amount:     req.Amount,
		Category:   req.Category,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	}

	if req.CreatedAt != nil {
		params.CreatedAt = *req.CreatedAt
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	from, to, err := httpx.DateRange(r, h.loc, time.Now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	txs, err := h.svc.ListByPeriod(r.Context(), auth.UserID(r), from, to)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := transaction.SearchFilter{
		UserID: auth.UserID(r),
		Query:  q.Get("q"),
	}

	if s := q.Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httpx.Error(w, r, errInvalidCategoryID)
			return
		}

		filter.CategoryID = &id
	}

	var err error

	if filter.DateFrom, err = httpx.QueryDate(r, "from", h.loc); err != nil {
		httpx.Error(w, r, err)
		return
	}

	to, err := httpx.QueryDate(r, "to", h.loc)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if to != nil {
		filter.DateTo = new(to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}

	if filter.AmountMin, err = queryInt(r, "min"); err != nil {
		httpx.Error(w, r, err)
		return
	}

	if filter.AmountMax, err = queryInt(r, "max"); err != nil {
		httpx.Error(w, r, err)
		return
	}

	txs, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(txs))
}

func queryInt(r *http.Request, key string) (*int64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errInvalidAmountFilter
	}

	return &n, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), auth.UserID(r), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Type       *transaction.Type `json:"type,omitempty"`
	Amount     *int64            `json:"amount,omitempty"`
	Category   *string           `json:"category,omitempty"`
	CategoryID *uuid.UUID        `json:"category_id,omitempty"`
	Note       *string           `json:"note,omitempty"`
	CreatedAt  *time.Time        `json:"created_at,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var req updateTransactionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	tx, err := h.svc.Update(r.Context(), auth.UserID(r), id, transaction.UpdateParams(req))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r), id); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
