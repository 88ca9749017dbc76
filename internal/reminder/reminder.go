package reminder

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyCustom  Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencyCustom:
		return true
	}

	return false
}

// Reminder is a bill the user wants to be reminded about before it is due.
type Reminder struct {
	ID           uuid.UUID
	UserID       string
	Title        string
	Amount       int64
	CategoryID   *uuid.UUID
	Frequency    Frequency
	NextDueDate  time.Time
	ReminderDays int // days before the due date to start reminding
	IsActive     bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type Upcoming struct {
	Reminder     *Reminder
	DaysUntilDue int
	IsOverdue    bool
}
