// Package middleware provides the HTTP middleware of the TravelCraft API.
//
// Session loads the cookie-bound session before a handler runs and commits it
// afterwards, sliding its expiry. Handlers reach it through GetSession and
// change it only via the returned SessionContext. RequireUser resolves the
// session's user into an Identity and answers 401 for anonymous or stale
// sessions. CORS and Logging cover the browser origin policy and request logs.
//
//	r := router.New(router.NewContext,
//		router.WithHTTPMiddleware[*router.Context](chimw.RequestID, middleware.CORS(corsCfg)))
//	r.Use(middleware.Logging[*router.Context](log))
//	r.Use(middleware.Session[*router.Context, auth.SessionData](transport))
//	r.With(middleware.RequireUser[*router.Context, auth.SessionData](users.Identity, middleware.AuthConfig{})).
//		Get("/api/auth/me", h.Me)
package middleware
