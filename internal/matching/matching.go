package matching

import (
	"time"

	"github.com/google/uuid"
)

// Mapping remembers that a word the user types in chat means a category.
type Mapping struct {
	ID         uuid.UUID
	UserID     string
	Alias      string
	CategoryID uuid.UUID
	CreatedAt  time.Time
}
