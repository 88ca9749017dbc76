package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single money movement. The sign lives in Type,
// Amount is always positive.
type Transaction struct {
	ID         uuid.UUID
	UserID     string
	Type       Type
	Amount     int64 // Amount in rupiah
	Category   string
	CategoryID *uuid.UUID
	Note       string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
