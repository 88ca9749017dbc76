package recurring

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/recurring"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Handler struct {
	svc *recurring.Service
	loc *time.Location
}

func NewHandler(svc *recurring.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/deactivate", h.deactivate)
}

type templateResponse struct {
	ID         uuid.UUID           `json:"id"`
	Type       transaction.Type    `json:"type"`
	Amount     int64               `json:"amount"`
	Category   string              `json:"category"`
	CategoryID *uuid.UUID          `json:"category_id,omitempty"`
	Note       string              `json:"note,omitempty"`
	Frequency  recurring.Frequency `json:"frequency"`
	StartDate  httpx.Date          `json:"start_date"`
	NextDate   httpx.Date          `json:"next_date"`
	IsActive   bool                `json:"is_active"`
	CreatedAt  time.Time           `json:"created_at"`
}

func toResponse(t *recurring.Template) templateResponse {
	return templateResponse{
		ID:         t.ID,
		Type:       t.Type,
		Amount:     t.Amount,
		Category:   t.Category,
		CategoryID: t.CategoryID,
		Note:       t.Note,
		Frequency:  t.Frequency,
		StartDate:  httpx.Date{Time: t.StartDate},
		NextDate:   httpx.Date{Time: t.NextDate},
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
	}
}

type createTemplateRequest struct {
	Type       transaction.Type    `json:"type"`
	Amount     int64               `json:"amount"`
	Category   string              `json:"category"`
	CategoryID *uuid.UUID          `json:"category_id,omitempty"`
	Note       string              `json:"note,omitempty"`
	Frequency  recurring.Frequency `json:"frequency"`
	StartDate  httpx.Date          `json:"start_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), recurring.CreateParams{
		UserID:     auth.UserID(r),
		Type:       req.Type,
		Amount:     req.Amount,
		Category:   req.Category,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Frequency:  req.Frequency,
		StartDate:  req.StartDate.In(h.loc),
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.List(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = toResponse(t)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	t, err := h.svc.Deactivate(r.Context(), auth.UserID(r), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(t))
}
