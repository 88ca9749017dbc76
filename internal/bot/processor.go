package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var (
	ErrMessageTextRequired = apperr.Validation("message text is required")
	ErrBotAccountNotLinked = botuser.ErrNotLinked
	ErrBotAccountInactive  = botuser.ErrInactive
)

type Message struct {
	Platform       botuser.Platform
	PlatformUserID string
	Text           string
	ReceivedAt     time.Time
}

type Response struct {
	Text    string
	Success bool
	Error   string
}

type UserResolver interface {
	Resolve(ctx context.Context, platform botuser.Platform, platformUserID string) (*botuser.BotUser, error)
}

type TransactionCreator interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

type CategoryMatcher interface {
	Match(ctx context.Context, userID, name string, typ transaction.Type) (*category.Category, error)
}

type Processor struct {
	users   UserResolver
	txs     TransactionCreator
	matcher CategoryMatcher
}

type Option func(*Processor)

// WithMatcher attaches the user's category to parsed commands when one matches.
func WithMatcher(m CategoryMatcher) Option {
	return func(p *Processor) {
		p.matcher = m
	}
}

func NewProcessor(users UserResolver, txs TransactionCreator, opts ...Option) *Processor {
	p := &Processor{users: users, txs: txs}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process turns a chat message into a transaction and a reply. It never
// returns an error; failures are reported in the Response.
func (p *Processor) Process(ctx context.Context, msg Message) Response {
	return p.respond(ctx, msg, func() (*Command, error) {
		return ParseCommand(msg.Text)
	})
}

// Submit records cmd, parsed elsewhere, for the sender of msg. Platform
// adapters use it for structured commands such as "/expense 25k makan".
func (p *Processor) Submit(ctx context.Context, msg Message, cmd *Command) Response {
	return p.respond(ctx, msg, func() (*Command, error) {
		return cmd, nil
	})
}

func (p *Processor) respond(ctx context.Context, msg Message, parse func() (*Command, error)) Response {
	start := time.Now()
	defer func() {
		processDuration.Observe(time.Since(start).Seconds())
	}()

	tx, cmd, err := p.process(ctx, msg, parse)
	if err != nil {
		messagesProcessed.WithLabelValues(string(msg.Platform), "failure").Inc()
		errorsTotal.WithLabelValues(reason(err)).Inc()

		slog.Warn("failed to process bot message",
			"platform", msg.Platform,
			"platform_user_id", msg.PlatformUserID,
			"error", err,
		)

		return Response{
			Text:  "❌ Error: " + err.Error(),
			Error: err.Error(),
		}
	}

	messagesProcessed.WithLabelValues(string(msg.Platform), "success").Inc()
	transactionsCreated.WithLabelValues(string(tx.Type)).Inc()

	return Response{Text: confirmation(cmd), Success: true}
}

func (p *Processor) process(ctx context.Context, msg Message, parse func() (*Command, error)) (*transaction.Transaction, *Command, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return nil, nil, ErrMessageTextRequired
	}

	user, err := p.users.Resolve(ctx, msg.Platform, msg.PlatformUserID)
	if err != nil {
		return nil, nil, err
	}

	cmd, err := parse()
	if err != nil {
		return nil, nil, err
	}

	params := transaction.CreateParams{
		UserID:   user.UserID,
		Type:     cmd.Type,
		Amount:   cmd.Amount,
		Category: cmd.Category,
		Note:     cmd.Note,
	}

	if p.matcher != nil {
		cat, err := p.matcher.Match(ctx, user.UserID, cmd.Category, cmd.Type)
		if err != nil {
			slog.Warn("failed to match category", "user_id", user.UserID, "category", cmd.Category, "error", err)
		} else if cat != nil {
			params.CategoryID = &cat.ID
		}
	}

	tx, err := p.txs.Create(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("saving transaction: %w", err)
	}

	return tx, cmd, nil
}

func confirmation(cmd *Command) string {
	label := "Expense"
	if cmd.Type == transaction.TypeIncome {
		label = "Income"
	}

	text := fmt.Sprintf("✅ %s added: %s - %s", label, cmd.Category, money.FormatRupiah(cmd.Amount))
	if cmd.Note != "" {
		text += "\nNote: " + cmd.Note
	}

	return text
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrMessageTextRequired):
		return "empty"
	case errors.Is(err, ErrBotAccountNotLinked):
		return "not_linked"
	case errors.Is(err, ErrBotAccountInactive):
		return "inactive"
	case errors.Is(err, ErrInvalidCommandFormat):
		return "parse"
	default:
		return "storage"
	}
}
