// Package sessiontransport moves session tokens between the session manager
// and the client. Cookie is the only transport: the token travels in a
// signed, HttpOnly, SameSite=Lax cookie whose Max-Age tracks the rolling
// expiry.
//
//	transport := sessiontransport.NewCookie(mgr, cookies, "travelcraft_sid")
//	r.Use(middleware.Session[*router.Context, auth.SessionData](transport))
package sessiontransport
