package matching

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Get("/suggest", h.suggest)
	r.Delete("/{alias}", h.forget)
}

type mappingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"-"`
	Alias      string    `json:"alias"`
	CategoryID uuid.UUID `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type suggestResponse struct {
	Alias      string     `json:"alias"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	alias := r.URL.Query().Get("alias")

	categoryID, err := h.svc.Suggest(r.Context(), auth.UserID(r), alias)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, suggestResponse{Alias: alias, CategoryID: categoryID})
}

type learnRequest struct {
	Alias      string    `json:"alias"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	m, err := h.svc.Learn(r.Context(), auth.UserID(r), req.Alias, req.CategoryID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, mappingResponse(*m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]mappingResponse, len(mappings))
	for i, m := range mappings {
		resp[i] = mappingResponse(*m)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Forget(r.Context(), auth.UserID(r), chi.URLParam(r, "alias")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
