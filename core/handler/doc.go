// Package handler defines the typed request-handling contract shared by the
// router adapter, the middleware package and the application handlers.
//
// Handlers never write to the ResponseWriter directly. They return a Response
// closure which the router renders after the middleware chain has unwound:
//
//	func me(ctx *router.Context) handler.Response {
//		id, ok := middleware.GetIdentity(ctx)
//		if !ok {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return response.JSON(map[string]any{"user": id})
//	}
//
// Deferring the write is what lets session middleware commit the session and
// refresh the cookie after the handler ran but before any byte is sent.
package handler
