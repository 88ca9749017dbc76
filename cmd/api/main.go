package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	"github.com/MrJamesThe3rd/dompetku/internal/auth"
	"github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	botuserStore "github.com/MrJamesThe3rd/dompetku/internal/botuser/store"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dompetku/internal/budget/store"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	categoryStore "github.com/MrJamesThe3rd/dompetku/internal/category/store"
	"github.com/MrJamesThe3rd/dompetku/internal/config"
	"github.com/MrJamesThe3rd/dompetku/internal/database"
	"github.com/MrJamesThe3rd/dompetku/internal/export"
	dompetkuHttp "github.com/MrJamesThe3rd/dompetku/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/dompetku/internal/http/analytics"
	botHandler "github.com/MrJamesThe3rd/dompetku/internal/http/bot"
	budgetHandler "github.com/MrJamesThe3rd/dompetku/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/dompetku/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/dompetku/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/dompetku/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/dompetku/internal/http/matching"
	recurringHandler "github.com/MrJamesThe3rd/dompetku/internal/http/recurring"
	reminderHandler "github.com/MrJamesThe3rd/dompetku/internal/http/reminder"
	txHandler "github.com/MrJamesThe3rd/dompetku/internal/http/transaction"
	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/dompetku/internal/matching/store"
	"github.com/MrJamesThe3rd/dompetku/internal/recurring"
	recurringStore "github.com/MrJamesThe3rd/dompetku/internal/recurring/store"
	"github.com/MrJamesThe3rd/dompetku/internal/reminder"
	reminderStore "github.com/MrJamesThe3rd/dompetku/internal/reminder/store"
	"github.com/MrJamesThe3rd/dompetku/internal/telegram"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
	txStore "github.com/MrJamesThe3rd/dompetku/internal/transaction/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.MigrationURL()); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var (
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), transaction.WithCategoryVerifier(categoryService))
		matchingService    = matching.NewService(matchingStore.New(db), categoryService)
		budgetService      = budget.NewService(budgetStore.New(db), transactionService, categoryService)
		analyticsService   = analytics.NewService(transactionService, categoryService)
		insightService     = insight.NewService(transactionService)
		reminderService    = reminder.NewService(reminderStore.New(db), loc)
		botUserService     = botuser.NewService(botuserStore.New(db), cfg.Bot.LinkTokenTTL)
		importService      = importer.NewService(importer.NewCSVParser(loc), transactionService, matchingService)
		exportService      = export.NewService(transactionService)
		processor          = bot.NewProcessor(botUserService, transactionService, bot.WithMatcher(matchingService))
	)

	recurringService := recurring.NewService(recurringStore.New(db), transactionService,
		recurring.WithCategoryVerifier(categoryService),
		recurring.WithTransactor(database.NewTransactor(db)),
	)

	handlers := dompetkuHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, loc),
		Categories:   categoryHandler.NewHandler(categoryService),
		Budgets:      budgetHandler.NewHandler(budgetService, loc),
		Analytics:    analyticsHandler.NewHandler(analyticsService, insightService, loc),
		Recurring:    recurringHandler.NewHandler(recurringService, loc),
		Reminders:    reminderHandler.NewHandler(reminderService, loc),
		Import:       importHandler.NewHandler(importService),
		Export:       exportHandler.NewHandler(exportService, loc),
		Aliases:      matchingHandler.NewHandler(matchingService),
		Bot:          botHandler.NewHandler(botUserService, processor),
	}

	var tg *telegram.Bot

	if cfg.Telegram.Token != "" {
		tg, err = telegram.New(telegram.Config{
			Token:         cfg.Telegram.Token,
			Debug:         cfg.Telegram.Debug,
			WebhookURL:    cfg.Telegram.WebhookURL,
			WebhookSecret: cfg.Telegram.WebhookSecret,
			Location:      loc,
		}, telegram.Deps{
			Processor:  processor,
			Accounts:   botUserService,
			Categories: categoryService,
			Summary:    analyticsService,
			Insights:   insightService,
			Budgets:    budgetService,
		})
		if err != nil {
			return err
		}

		if tg.UsesWebhook() {
			handlers.Telegram = tg.WebhookHandler()
		}
	}

	router := dompetkuHttp.New(handlers, dompetkuHttp.Options{
		Auth:        auth.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		BotSecret:   cfg.Bot.SharedSecret,
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
		Ping:        db.PingContext,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", cfg.App.Port, "timezone", loc.String())

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		recurring.NewWorker(recurringService, cfg.Recurring.Interval).Run(gctx)
		return nil
	})

	if tg != nil {
		g.Go(func() error {
			return tg.Start(gctx)
		})
	}

	return g.Wait()
}
