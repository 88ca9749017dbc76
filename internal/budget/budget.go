package budget

import (
	"time"

	"github.com/google/uuid"
)

// PeriodMonthly is the only budget period supported.
const PeriodMonthly = "monthly"

type Budget struct {
	ID         uuid.UUID
	UserID     string
	CategoryID uuid.UUID
	Amount     int64
	Period     string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type Level string

const (
	LevelSafe     Level = "safe"
	LevelWarning  Level = "warning"
	LevelExceeded Level = "exceeded"
)

const (
	warningPercentage  = 80
	exceededPercentage = 100
)

// Classify maps a spent percentage to a level. Exact thresholds belong to the
// higher level.
func Classify(percentage int) Level {
	switch {
	case percentage >= exceededPercentage:
		return LevelExceeded
	case percentage >= warningPercentage:
		return LevelWarning
	default:
		return LevelSafe
	}
}

type Status struct {
	Budget     *Budget
	Spent      int64
	Remaining  int64
	Percentage int
	Level      Level
}
