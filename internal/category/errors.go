package category

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound       = apperr.NotFound("category not found")
	ErrUnauthorized   = apperr.Unauthorized("category belongs to another user")
	ErrDefaultLocked  = apperr.Conflict("default categories cannot be deleted")
	ErrUserIDRequired = apperr.Validation("user id is required")
	ErrNameRequired   = apperr.Validation("category name is required")
	ErrIconRequired   = apperr.Validation("category icon is required")
	ErrColorRequired  = apperr.Validation("category color is required")
	ErrInvalidColor   = apperr.Validation("invalid color format, use hex like #FF5733 or #F00")
	ErrInvalidType    = apperr.Validation("invalid category type")
	ErrNoFields       = apperr.Validation("at least one field must be provided for update")
)
