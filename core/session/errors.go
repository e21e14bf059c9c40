package session

import "errors"

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session has expired")
	// ErrStoreUnavailable wraps backend failures. It never means "no session".
	ErrStoreUnavailable = errors.New("session store unavailable")
	ErrInvalidUser      = errors.New("session: user id must not be nil")
	ErrTokenGeneration  = errors.New("failed to generate session token")
	ErrSaveSession      = errors.New("failed to save session")
	ErrDeleteSession    = errors.New("failed to delete session")
)

// IsAbsent reports whether err means the client simply has no usable
// session, as opposed to the store failing.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
}
