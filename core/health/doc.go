// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, 2*time.Second,
//		health.Check{Name: "mongo", Fn: mongo.Healthcheck(client)},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(rdb)},
//	))
package health
