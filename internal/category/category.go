package category

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// Presentation used for transactions whose category has no record.
const (
	FallbackIcon  = "📦"
	FallbackColor = "#607D8B"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type Category struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Icon      string
	Color     string
	Type      transaction.Type
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
