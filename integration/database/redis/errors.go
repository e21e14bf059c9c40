package redis

import "errors"

var (
	ErrMissingURL        = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL        = errors.New("redis: REDIS_URL must be a redis:// or rediss:// URL")
	ErrNotReady          = errors.New("redis: no answer to ping before the retries ran out")
	ErrHealthcheckFailed = errors.New("redis: ping failed")
)
