package recurring

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound     = apperr.NotFound("recurring transaction not found")
	ErrUnauthorized = apperr.Unauthorized("recurring transaction belongs to another user")

	ErrUserIDRequired       = apperr.Validation("user id is required")
	ErrInvalidType          = apperr.Validation("invalid transaction type")
	ErrAmountMustBePositive = apperr.Validation("amount must be greater than 0")
	ErrCategoryRequired     = apperr.Validation("category is required")
	ErrInvalidFrequency     = apperr.Validation("invalid frequency")
	ErrStartDateRequired    = apperr.Validation("start date is required")
)
