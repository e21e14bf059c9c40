// Package auth implements TravelCraft accounts and the /api/auth routes.
//
// Users are stored with bcrypt password hashes in a UserStore (MongoDB or
// memory). Signing up or in binds the request's session to the user; logout
// and cleanup-session destroy it. Heartbeat answers whether the session is
// still bound to a user and, through the session middleware, slides its
// expiry.
package auth
