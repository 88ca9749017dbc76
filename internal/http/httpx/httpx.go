// Package httpx holds the JSON and error helpers shared by the HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
)

var (
	ErrInvalidBody = apperr.Validation("invalid request body")
	ErrInvalidID   = apperr.Validation("invalid id")
	ErrInvalidDate = apperr.Validation("invalid date, expected YYYY-MM-DD")
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as JSON. Errors without a kind are logged and hidden
// behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to handle request", "method", r.Method, "path", r.URL.Path, "error", err)
		Message(w, status, "internal error")

		return
	}

	Message(w, status, err.Error())
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return nil
}

func URLParamUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter in loc.
func QueryDate(r *http.Request, key string, loc *time.Location) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, key)
	}

	return &t, nil
}

// DateRange reads the "from" and "to" query parameters. Missing bounds default
// to the current month; "to" covers its whole day.
func DateRange(r *http.Request, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	from, err := QueryDate(r, "from", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := QueryDate(r, "to", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	now = now.In(loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if from != nil {
		start = *from
	}

	if to != nil {
		end = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return start, end, nil
}

// Date is a JSON calendar date written as "YYYY-MM-DD". RFC 3339 timestamps
// are accepted too and keep only their date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return ErrInvalidDate
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// In returns midnight of the date in loc, or the zero time for an unset date.
func (d Date) In(loc *time.Location) time.Time {
	if d.IsZero() {
		return time.Time{}
	}

	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
