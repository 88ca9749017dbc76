package reminder

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound     = apperr.NotFound("reminder not found")
	ErrUnauthorized = apperr.Unauthorized("reminder belongs to another user")

	ErrUserIDRequired       = apperr.Validation("user id is required")
	ErrTitleRequired        = apperr.Validation("title is required")
	ErrAmountMustBePositive = apperr.Validation("amount must be greater than 0")
	ErrInvalidFrequency     = apperr.Validation("invalid frequency")
	ErrNegativeReminderDays = apperr.Validation("reminder days cannot be negative")
	ErrDueDateRequired      = apperr.Validation("due date is required")
	ErrInvalidDays          = apperr.Validation("days must be greater than 0")
)
