// Package response builds handler.Response values for the JSON API:
// plain JSON payloads, message envelopes and structured errors.
//
//	return response.Created(map[string]any{"message": "User created", "user": u})
//	return response.Error(response.ErrBadRequest.WithMessage("User already exists"))
//
// Errors returned from a Response are rendered by JSONErrorHandler. HTTPError
// values keep their status and code; errors implementing StatusCode() int keep
// their status; anything else becomes a 500 without leaking its cause.
package response
