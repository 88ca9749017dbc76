package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/export"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
)

type Handler struct {
	svc *export.Service
	loc *time.Location
	now func() time.Time
}

func NewHandler(svc *export.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams the transactions of ?from&to as a CSV attachment. The file
// is built in memory first so a failing query still gets a JSON error.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	from, to, err := httpx.DateRange(r, h.loc, h.now())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), &buf, auth.UserID(r), from, to)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(from, to)))
	w.Header().Set("X-Transaction-Count", strconv.Itoa(n))

	_, _ = buf.WriteTo(w)
}
