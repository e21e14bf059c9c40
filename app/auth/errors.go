package auth

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrMissingFields    = errors.New("missing required fields")
	ErrStoreUnavailable = errors.New("user store unavailable")
	ErrHashPassword     = errors.New("failed to hash password")
)
