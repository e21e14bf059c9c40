package chat

import "errors"

var (
	ErrUnknownProvider  = errors.New("invalid provider")
	ErrProviderDisabled = errors.New("provider is not configured")
	ErrInvalidAPIKey    = errors.New("invalid or missing API key")
	ErrEmptyResponse    = errors.New("provider returned no text")
	ErrCompletionFailed = errors.New("chat completion failed")
)
