// Package router adapts typed handler.HandlerFunc values onto a chi mux.
//
// chi owns matching, path parameters and its own net/http middleware
// (request id, recoverer). This package adds the typed layer on top: a
// per-request context value, typed middleware chains and a single error
// handler that renders whatever error a handler.Response returns.
//
//	r := router.New(router.NewContext,
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//		router.WithHTTPMiddleware[*router.Context](chimw.RequestID, chimw.Recoverer),
//	)
//	r.Route("/api/auth", func(r *router.Router[*router.Context]) {
//		r.Use(sessionMiddleware)
//		r.Post("/signin", h.signin)
//		r.With(requireUser).Get("/me", h.me)
//	})
//
// Typed middleware registered with Use applies to routes registered after
// the call, on this router and on routers derived from it.
package router
