// Package telegram connects the chat bot to Telegram through long polling or
// a webhook.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	dbot "github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var ErrTokenRequired = errors.New("telegram token is required")

// API is the part of the Telegram client the handlers use.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type MessageProcessor interface {
	Process(ctx context.Context, msg dbot.Message) dbot.Response
	Submit(ctx context.Context, msg dbot.Message, cmd *dbot.Command) dbot.Response
}

type AccountService interface {
	LinkWithToken(ctx context.Context, token string, params botuser.LinkParams) (*botuser.BotUser, error)
	Resolve(ctx context.Context, platform botuser.Platform, platformUserID string) (*botuser.BotUser, error)
}

type CategoryLister interface {
	List(ctx context.Context, userID string) ([]*category.Category, error)
}

type SummaryService interface {
	Categories(ctx context.Context, q analytics.CategoryQuery) (*analytics.Summary, error)
}

type InsightService interface {
	Generate(ctx context.Context, userID string, period insight.Period) (*insight.FinancialInsight, error)
}

type BudgetService interface {
	ListStatuses(ctx context.Context, userID string, start, end time.Time) ([]*budget.Status, error)
}

// Deps are the services behind the bot commands.
type Deps struct {
	Processor  MessageProcessor
	Accounts   AccountService
	Categories CategoryLister
	Summary    SummaryService
	Insights   InsightService
	Budgets    BudgetService
}

type Config struct {
	Token         string
	Debug         bool
	WebhookURL    string
	WebhookSecret string
	Location      *time.Location
}

type Bot struct {
	api  *bot.Bot
	cfg  Config
	deps Deps
	now  func() time.Time
}

func New(cfg Config, deps Deps) (*Bot, error) {
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	b := &Bot{cfg: cfg, deps: deps, now: time.Now}

	opts := []bot.Option{
		bot.WithDefaultHandler(adapt(b.handleMessage)),
		bot.WithErrorsHandler(func(err error) {
			slog.Error("telegram client error", "error", err)
		}),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	if cfg.WebhookSecret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.api = api
	b.registerHandlers()

	return b, nil
}

// UsesWebhook reports whether updates arrive through WebhookHandler instead
// of long polling.
func (b *Bot) UsesWebhook() bool {
	return b.cfg.WebhookURL != ""
}

// WebhookHandler receives updates posted by Telegram. Mount it on the HTTP
// router when UsesWebhook is true.
func (b *Bot) WebhookHandler() http.Handler {
	return b.api.WebhookHandler()
}

// Start blocks until ctx ends, either polling for updates or dispatching the
// ones received by WebhookHandler.
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	if !b.UsesWebhook() {
		slog.Info("telegram bot started", "username", me.Username, "mode", "polling")

		if _, err := b.api.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
			return fmt.Errorf("failed to delete webhook: %w", err)
		}

		b.api.Start(ctx)

		return nil
	}

	if _, err := b.api.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         b.cfg.WebhookURL,
		SecretToken: b.cfg.WebhookSecret,
	}); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	slog.Info("telegram bot started", "username", me.Username, "mode", "webhook")
	b.api.StartWebhook(ctx)

	return nil
}

type handlerFunc func(ctx context.Context, tg API, update *models.Update)

func (b *Bot) commands() map[string]handlerFunc {
	return map[string]handlerFunc{
		"/start":      b.handleStart,
		"/help":       b.handleHelp,
		"/commands":   b.handleHelp,
		"/link":       b.handleLink,
		"/categories": b.handleCategories,
		"/expense": func(ctx context.Context, tg API, update *models.Update) {
			b.handleTransaction(ctx, tg, update, transaction.TypeExpense)
		},
		"/income": func(ctx context.Context, tg API, update *models.Update) {
			b.handleTransaction(ctx, tg, update, transaction.TypeIncome)
		},
		"/summary":  b.handleSummary,
		"/insights": b.handleInsights,
		"/budget":   b.handleBudget,
	}
}

func (b *Bot) registerHandlers() {
	for command, h := range b.commands() {
		b.api.RegisterHandlerMatchFunc(commandMatcher(command), adapt(h))
	}
}

func adapt(h handlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
		h(ctx, tgBot, update)
	}
}

// commandMatcher matches "/cmd", "/cmd args" and "/cmd@botname args".
func commandMatcher(command string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}

		name, _ := splitCommand(update.Message.Text)

		return name == command
	}
}
