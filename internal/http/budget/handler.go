package budget

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
)

type Handler struct {
	svc *budget.Service
	loc *time.Location
}

func NewHandler(svc *budget.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/", h.set)
	r.Get("/", h.list)
	r.Get("/status", h.listStatuses)
	r.Get("/status/{categoryID}", h.status)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID         uuid.UUID  `json:"id"`
	CategoryID uuid.UUID  `json:"category_id"`
	Amount     int64      `json:"amount"`
	Period     string     `json:"period"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type statusResponse struct {
	Budget     budgetResponse `json:"budget"`
	Spent      int64          `json:"spent"`
	Remaining  int64          `json:"remaining"`
	Percentage int            `json:"percentage"`
	Status     budget.Level   `json:"status"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Period:     b.Period,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toStatusResponse(s *budget.Status) statusResponse {
	return statusResponse{
		Budget:     toResponse(s.Budget),
		Spent:      s.Spent,
		Remaining:  s.Remaining,
		Percentage: s.Percentage,
		Status:     s.Level,
	}
}

type setBudgetRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	Amount     int64     `json:"amount"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	b, err := h.svc.Set(r.Context(), budget.SetParams{
		UserID:     auth.UserID(r),
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) listStatuses(w http.ResponseWriter, r *http.Request) {
	from, to, err := httpx.DateRange(r, h.loc, time.Now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	statuses, err := h.svc.ListStatuses(r.Context(), auth.UserID(r), from, to)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]statusResponse, len(statuses))
	for i, s := range statuses {
		resp[i] = toStatusResponse(s)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	categoryID, err := httpx.URLParamUUID(r, "categoryID")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	from, to, err := httpx.DateRange(r, h.loc, time.Now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	st, err := h.svc.Status(r.Context(), budget.StatusQuery{
		UserID:     auth.UserID(r),
		CategoryID: categoryID,
		Start:      from,
		End:        to,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toStatusResponse(st))
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
