package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is a definitive 401 from the server.
	ErrUnauthenticated = errors.New("client: not authenticated")
	ErrInvalidBaseURL  = errors.New("client: invalid base url")
	ErrNotStarted      = errors.New("client: session manager not started")
)

// NetworkError wraps a transport failure. The server state is unknown.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("client: %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer other than 401.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("client: %s: %d %s", e.Op, e.StatusCode, e.Message)
}

// IsTransient reports whether err leaves the authentication state undecided.
func IsTransient(err error) bool {
	var netErr *NetworkError
	var statusErr *StatusError
	return errors.As(err, &netErr) || (errors.As(err, &statusErr) && statusErr.StatusCode >= 500)
}
