package budget

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrBudgetNotFound = apperr.NotFound("budget not found")
	ErrUnauthorized   = apperr.Unauthorized("budget belongs to another user")

	ErrUserIDRequired       = apperr.Validation("user id is required")
	ErrCategoryIDRequired   = apperr.Validation("category id is required")
	ErrAmountMustBePositive = apperr.Validation("budget amount must be greater than 0")
	ErrStartDateRequired    = apperr.Validation("start date is required")
	ErrEndDateRequired      = apperr.Validation("end date is required")
	ErrInvalidDateRange     = apperr.Validation("start date must be before end date")
)
