package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/pkg/ratelimiter"
)

// RateLimiter takes one token for key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// RateLimitConfig configures RateLimit.
type RateLimitConfig[C handler.Context] struct {
	Limiter RateLimiter
	// KeyFunc defaults to the client IP. Run chi's RealIP first when behind a proxy.
	KeyFunc func(C) string
	Logger  *slog.Logger
}

// RateLimit rejects requests over the limit with 429 and a Retry-After header.
// Limiter errors let the request through.
func RateLimit[C handler.Context](cfg RateLimitConfig[C]) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("middleware: rate limiter is required")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(ctx C) string { return remoteIP(ctx.Request()) }
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			key := cfg.KeyFunc(ctx)
			res, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				cfg.Logger.WarnContext(ctx, "rate limiter unavailable", logger.Component("ratelimit"), logger.Error(err))
				return next(ctx)
			}
			if res.Allowed {
				return next(ctx)
			}

			cfg.Logger.InfoContext(ctx, "rate limit exceeded",
				logger.Component("ratelimit"), logger.ClientIP(key), logger.Path(ctx.Request().URL.Path))

			retry := strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds())))
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Retry-After", retry)
				return response.ErrTooManyRequests.WithMessage("Too many attempts, please try again later")
			}
		}
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
