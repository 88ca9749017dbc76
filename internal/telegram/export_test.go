package telegram

import (
	"context"
	"time"

	"github.com/go-telegram/bot/models"
)

// NewTestBot builds a Bot without a Telegram client.
func NewTestBot(cfg Config, deps Deps, now func() time.Time) *Bot {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Bot{cfg: cfg, deps: deps, now: now}
}

// Handle routes update the way the registered handlers do.
func (b *Bot) Handle(ctx context.Context, tg API, update *models.Update) {
	for command, h := range b.commands() {
		if commandMatcher(command)(update) {
			h(ctx, tg, update)
			return
		}
	}

	b.handleMessage(ctx, tg, update)
}

var SplitCommand = splitCommand
