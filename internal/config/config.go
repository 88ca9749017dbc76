package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Dompetku"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Asia/Jakarta"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dompetku"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET"`
		Issuer    string        `envconfig:"JWT_ISSUER" default:"dompetku"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	Bot struct {
		SharedSecret string        `envconfig:"BOT_SHARED_SECRET"`
		LinkTokenTTL time.Duration `envconfig:"BOT_LINK_TOKEN_TTL" default:"15m"`
	}

	Telegram struct {
		Token         string `envconfig:"TELEGRAM_BOT_TOKEN"`
		Debug         bool   `envconfig:"TELEGRAM_DEBUG" default:"false"`
		WebhookURL    string `envconfig:"TELEGRAM_WEBHOOK_URL"`
		WebhookSecret string `envconfig:"TELEGRAM_WEBHOOK_SECRET"`
	}

	Recurring struct {
		Interval time.Duration `envconfig:"RECURRING_INTERVAL" default:"1h"`
	}

	TUI struct {
		UserID string `envconfig:"TUI_USER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return c.databaseURL("postgres")
}

// MigrationURL is the connection string in the form golang-migrate's pgx/v5
// driver expects.
func (c *Config) MigrationURL() string {
	return c.databaseURL("pgx5")
}

func (c *Config) databaseURL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port)),
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}

	return u.String()
}

// Location resolves App.Timezone. Period boundaries (months, days) are cut in
// this zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
