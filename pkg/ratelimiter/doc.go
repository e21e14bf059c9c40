// Package ratelimiter is an in-memory token bucket limiter keyed by string,
// used to slow down credential guessing on the sign-in and sign-up routes.
//
//	limiter, err := ratelimiter.New(ratelimiter.Config{Capacity: 10, RefillRate: 1, RefillInterval: 30 * time.Second})
//	res, err := limiter.Allow(ctx, clientIP)
//	if !res.Allowed {
//		// retry after res.RetryAfter
//	}
package ratelimiter
