package recurring

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}

	return false
}

// Next returns the occurrence after prev. Monthly schedules keep the day of
// start, clamped to the last day of shorter months.
func (f Frequency) Next(prev, start time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return prev.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return prev.AddDate(0, 0, 7)
	}

	first := time.Date(prev.Year(), prev.Month()+1, 1, prev.Hour(), prev.Minute(), prev.Second(), prev.Nanosecond(), prev.Location())
	lastDay := first.AddDate(0, 1, -1).Day()

	return first.AddDate(0, 0, min(start.Day(), lastDay)-1)
}

// Template describes a transaction that repeats on a schedule.
type Template struct {
	ID         uuid.UUID
	UserID     string
	Type       transaction.Type
	Amount     int64
	Category   string
	CategoryID *uuid.UUID
	Note       string
	Frequency  Frequency
	StartDate  time.Time
	NextDate   time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
