package botuser

import "github.com/MrJamesThe3rd/dompetku/internal/apperr"

var (
	ErrNotFound      = apperr.NotFound("bot user not found")
	ErrNotLinked     = apperr.NotFound("bot account not linked. please link your account first")
	ErrInactive      = apperr.Unauthorized("bot account is not active")
	ErrUnauthorized  = apperr.Unauthorized("bot account belongs to another user")
	ErrAlreadyLinked = apperr.Conflict("This bot account is already linked to another user")

	ErrInvalidLinkToken = apperr.Unauthorized("invalid or expired link token")

	ErrUserIDRequired         = apperr.Validation("user id is required")
	ErrPlatformUserIDRequired = apperr.Validation("platform user id is required")
	ErrInvalidPlatform        = apperr.Validation("invalid platform")
	ErrTokenRequired          = apperr.Validation("link token is required")
)
