package botuser

import (
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformTelegram Platform = "telegram"
	PlatformWhatsApp Platform = "whatsapp"
)

func (p Platform) Valid() bool {
	return p == PlatformTelegram || p == PlatformWhatsApp
}

// BotUser links an account on a chat platform to a Dompetku user.
type BotUser struct {
	ID               uuid.UUID
	UserID           string
	Platform         Platform
	PlatformUserID   string
	PlatformUsername string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// LinkToken is a one-time secret a user hands to the bot to prove ownership.
type LinkToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *LinkToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
