package transaction

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound     = apperr.NotFound("transaction not found")
	ErrUnauthorized = apperr.Unauthorized("transaction belongs to another user")

	ErrUserIDRequired       = apperr.Validation("user id is required")
	ErrInvalidType          = apperr.Validation("invalid transaction type")
	ErrAmountMustBePositive = apperr.Validation("amount must be greater than 0")
	ErrCategoryRequired     = apperr.Validation("category is required")
	ErrNoFieldsToUpdate     = apperr.Validation("no fields to update")
	ErrInvalidDateRange     = apperr.Validation("start date must be before end date")
	ErrNegativeAmountFilter = apperr.Validation("amount filters cannot be negative")
	ErrInvalidAmountRange   = apperr.Validation("minimum amount cannot be greater than maximum amount")
)
