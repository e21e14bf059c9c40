// Package redis connects to Redis with retry and exposes a readiness check.
// It backs the alternative session store (SESSION_STORE=redis).
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Both redis:// and rediss:// URLs are accepted.
package redis
