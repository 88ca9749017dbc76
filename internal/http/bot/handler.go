// Package bot exposes account linking to logged-in users and the message
// bridge used by chat platform adapters.
package bot

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
)

type Handler struct {
	users     *botuser.Service
	processor *bot.Processor
}

func NewHandler(users *botuser.Service, processor *bot.Processor) *Handler {
	return &Handler{users: users, processor: processor}
}

// Routes serves the endpoints of a logged-in user.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/link-token", h.createLinkToken)
	r.Get("/accounts", h.listAccounts)
	r.Patch("/accounts/{id}", h.setActive)
	r.Delete("/accounts/{id}", h.unlink)
}

// BridgeRoutes serves the endpoints called by platform adapters.
func (h *Handler) BridgeRoutes(r chi.Router) {
	r.Post("/link", h.link)
	r.Post("/messages", h.message)
}

type linkTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) createLinkToken(w http.ResponseWriter, r *http.Request) {
	t, err := h.users.CreateLinkToken(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, linkTokenResponse{Token: t.Token, ExpiresAt: t.ExpiresAt})
}

type accountResponse struct {
	ID               uuid.UUID        `json:"id"`
	UserID           string           `json:"-"`
	Platform         botuser.Platform `json:"platform"`
	PlatformUserID   string           `json:"platform_user_id"`
	PlatformUsername string           `json:"platform_username,omitempty"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.users.ListByUser(r.Context(), auth.UserID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = accountResponse(*a)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var req setActiveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	if req.Active == nil {
		httpx.Error(w, r, httpx.ErrInvalidBody)
		return
	}

	a, err := h.users.SetActive(r.Context(), auth.UserID(r), id, *req.Active)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, accountResponse(*a))
}

func (h *Handler) unlink(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := h.users.Unlink(r.Context(), auth.UserID(r), id); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type linkRequest struct {
	Token            string           `json:"token"`
	Platform         botuser.Platform `json:"platform"`
	PlatformUserID   string           `json:"platform_user_id"`
	PlatformUsername string           `json:"platform_username"`
}

func (h *Handler) link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	a, err := h.users.LinkWithToken(r.Context(), req.Token, botuser.LinkParams{
		Platform:         req.Platform,
		PlatformUserID:   req.PlatformUserID,
		PlatformUsername: req.PlatformUsername,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, accountResponse(*a))
}

type messageRequest struct {
	Platform       botuser.Platform `json:"platform"`
	PlatformUserID string           `json:"platform_user_id"`
	Text           string           `json:"text"`
}

type messageResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// message always answers 200 once the body decodes; a failed command is
// reported in the response so the adapter can relay the text to the chat.
func (h *Handler) message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := h.processor.Process(r.Context(), bot.Message{
		Platform:       req.Platform,
		PlatformUserID: req.PlatformUserID,
		Text:           req.Text,
		ReceivedAt:     time.Now(),
	})

	httpx.JSON(w, http.StatusOK, messageResponse(resp))
}
