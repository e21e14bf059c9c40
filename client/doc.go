// Package client is the TravelCraft session-liveness client.
//
// API wraps the auth endpoints over net/http with a cookie jar.
// SessionManager polls the heartbeat endpoint while the session is active,
// pauses while the page is hidden and destroys the session after a period of
// inactivity or on unload. AuthManager owns the authentication state and
// starts or stops the session manager on sign-in and logout.
//
//	api, _ := client.NewAPI("http://localhost:5000")
//	sessions := client.NewSessionManager(api)
//	auth := client.NewAuthManager(api, sessions)
//	_ = sessions.Start(ctx)
//	_ = auth.Init(ctx)
//	user, err := auth.SignIn(ctx, email, password)
package client
