package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/http/analytics"
	"github.com/MrJamesThe3rd/dompetku/internal/http/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/http/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/http/category"
	"github.com/MrJamesThe3rd/dompetku/internal/http/export"
	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
	"github.com/MrJamesThe3rd/dompetku/internal/http/importcsv"
	"github.com/MrJamesThe3rd/dompetku/internal/http/matching"
	"github.com/MrJamesThe3rd/dompetku/internal/http/recurring"
	"github.com/MrJamesThe3rd/dompetku/internal/http/reminder"
	"github.com/MrJamesThe3rd/dompetku/internal/http/transaction"
)

const TelegramWebhookPath = "/telegram/webhook"

type Handlers struct {
	Transactions *transaction.Handler
	Categories   *category.Handler
	Budgets      *budget.Handler
	Analytics    *analytics.Handler
	Recurring    *recurring.Handler
	Reminders    *reminder.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Aliases      *matching.Handler
	Bot          *bot.Handler

	// Telegram receives webhook updates. Nil when the bot polls or is off.
	Telegram http.Handler
}

type Options struct {
	Auth        *auth.Authenticator
	BotSecret   string
	CORSOrigins []string
	Timeout     time.Duration
	// Ping reports whether the database is reachable for /healthz.
	Ping func(ctx context.Context) error
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.BotSecretHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", health(opts.Ping))
	router.Handle("/metrics", promhttp.Handler())

	if h.Telegram != nil {
		router.Post(TelegramWebhookPath, h.Telegram.ServeHTTP)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(opts.Auth.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))

				r.Route("/transactions", h.Transactions.Routes)
				r.Route("/categories", h.Categories.Routes)
				r.Route("/budgets", h.Budgets.Routes)
				r.Route("/analytics", h.Analytics.Routes)
				r.Route("/insights", h.Analytics.InsightRoutes)
				r.Route("/recurring", h.Recurring.Routes)
				r.Route("/reminders", h.Reminders.Routes)
				r.Route("/matching", h.Aliases.Routes)
				r.Route("/export", h.Export.Routes)
			})

			r.Route("/import", h.Import.Routes)
		})

		r.Route("/bot", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Group(func(r chi.Router) {
				r.Use(opts.Auth.Middleware)
				h.Bot.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.SharedSecret(opts.BotSecret))
				h.Bot.BridgeRoutes(r)
			})
		})
	})

	return router
}

type healthResponse struct {
	Status string `json:"status"`
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "database unavailable"})
				return
			}
		}

		httpx.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
