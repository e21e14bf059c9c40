// Package session implements server-side sessions with a rolling expiry.
//
// A Session is created anonymous when a request arrives without a usable
// cookie, bound to a user on sign-in (rotating its token), and removed on
// logout, explicit cleanup, or once it has been idle for longer than the TTL
// (30 minutes by default). Every committed request slides the expiry forward.
//
// Manager sits on top of a Store. Three stores exist: MemoryStore here,
// mongostore and redisstore in sub-packages.
//
//	store := session.NewMemoryStore[AppData]()
//	mgr := session.NewManager(store, session.WithTTL(30*time.Minute))
//
//	g.Go(mgr.RunCleanup(ctx, 10*time.Minute))
package session
