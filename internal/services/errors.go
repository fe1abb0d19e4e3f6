package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; anything else is treated as a store failure.
var (
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTierRequired       = errors.New("membership tier is required")
	ErrInvalidTier        = errors.New("unknown membership tier")
	ErrInvalidUser        = errors.New("invalid user")
)
