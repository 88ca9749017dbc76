package reminder

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/reminder"
)

const defaultUpcomingDays = 7

var errInvalidDays = apperr.Validation("days must be a number")

type Handler struct {
	svc *reminder.Service
	loc *time.Location
}

func NewHandler(svc *reminder.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/upcoming", h.upcoming)
	r.Post("/{id}/paid", h.markPaid)
	r.Delete("/{id}", h.delete)
}

type reminderResponse struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Amount       int64              `json:"amount"`
	CategoryID   *uuid.UUID         `json:"category_id,omitempty"`
	Frequency    reminder.Frequency `json:"frequency"`
	NextDueDate  httpx.Date         `json:"next_due_date"`
	ReminderDays int                `json:"reminder_days"`
	IsActive     bool               `json:"is_active"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

func toResponse(r *reminder.Reminder) reminderResponse {
	return reminderResponse{
		ID:           r.ID,
		Title:        r.Title,
		Amount:       r.Amount,
		CategoryID:   r.CategoryID,
		Frequency:    r.Frequency,
		NextDueDate:  httpx.Date{Time: r.NextDueDate},
		ReminderDays: r.ReminderDays,
		IsActive:     r.IsActive,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

type upcomingResponse struct {
	reminderResponse
	DaysUntilDue int  `json:"days_until_due"`
	IsOverdue    bool `json:"is_overdue"`
}

type createReminderRequest struct {
	Title        string             `json:"title"`
	Amount       int64              `json:"amount"`
	CategoryID   *uuid.UUID         `json:"category_id,omitempty"`
	Frequency    reminder.Frequency `json:"frequency"`
	NextDueDate  httpx.Date         `json:"next_due_date"`
	ReminderDays int                `json:"reminder_days"`
	Notes        string             `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	rem, err := h.svc.Create(r.Context(), reminder.CreateParams{
		UserID:       auth.UserID(r),
		Title:        req.Title,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		Frequency:    req.Frequency,
		NextDueDate:  req.NextDueDate.In(h.loc),
		ReminderDays: req.ReminderDays,
		Notes:        req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(rem))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.List(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]reminderResponse, len(reminders))
	for i, rem := range reminders {
		resp[i] = toResponse(rem)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) upcoming(w http.ResponseWriter, r *http.Request) {
	days := defaultUpcomingDays

	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.Error(w, r, errInvalidDays)
			return
		}

		days = n
	}

	items, err := h.svc.Upcoming(r.Context(), auth.UserID(r), days)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]upcomingResponse, len(items))
	for i, u := range items {
		resp[i] = upcomingResponse{
			reminderResponse: toResponse(u.Reminder),
			DaysUntilDue:     u.DaysUntilDue,
			IsOverdue:        u.IsOverdue,
		}
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	rem, err := h.svc.MarkPaid(r.Context(), auth.UserID(r), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(rem))
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
