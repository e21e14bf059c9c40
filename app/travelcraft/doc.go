// Package travelcraft composes the TravelCraft API: stores selected by
// SESSION_STORE, the rolling session middleware, auth, trip posts, contact
// and chat routes, health probes and the expired-session sweeper.
//
//	var cfg travelcraft.Config
//	config.MustLoad(&cfg)
//	app, err := travelcraft.New(ctx, cfg, travelcraft.WithLogger(log))
//	err = app.Run(ctx)
package travelcraft
