package matching

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound           = apperr.NotFound("alias not found")
	ErrUserIDRequired     = apperr.Validation("user id is required")
	ErrAliasRequired      = apperr.Validation("alias is required")
	ErrCategoryIDRequired = apperr.Validation("category id is required")
)
