package handler

import (
	"context"
	"net/http"
)

// Context is the request-scoped value handed to every HandlerFunc.
// It is also a context.Context bound to the request lifetime.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns a path parameter, or "" when the route has none by that name.
	Param(key string) string
	// SetValue stores a request-scoped value visible through Value.
	SetValue(key, val any)
}
