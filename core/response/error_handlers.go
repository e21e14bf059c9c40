package response

import (
	"errors"
	"net/http"

	"github.com/travelcraft/travelcraft/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// convertToHTTPError maps any error to an HTTPError. HTTPError values pass
// through, statusCode implementers keep their status, everything else is 500.
// Causes of 5xx errors are never exposed in the response body.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			return httpErr.withoutCause()
		}
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		return ErrInternalServerError
	}
	if status >= http.StatusInternalServerError {
		return base
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as {"code","message","details"} JSON.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
