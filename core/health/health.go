package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
)

// Check is a named dependency probe, e.g. a MongoDB or Redis ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Liveness reports that the process is serving requests.
func Liveness[C handler.Context](C) handler.Response {
	return response.JSON(map[string]string{"status": "alive"})
}

// Readiness runs all checks concurrently within timeout and answers 503 if
// any of them fails.
func Readiness[C handler.Context](log *slog.Logger, timeout time.Duration, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(ctx C) handler.Response {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		errs := make([]error, len(checks))

		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				errs[i] = c.Fn(cctx)
				return nil
			})
		}
		_ = g.Wait()

		ready := true
		for i, c := range checks {
			if errs[i] != nil {
				ready = false
				results[c.Name] = "unavailable"
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"), slog.String("check", c.Name), logger.Error(errs[i]))
				continue
			}
			results[c.Name] = "ok"
		}

		if !ready {
			return response.JSONWithStatus(map[string]any{"status": "unavailable", "checks": results},
				http.StatusServiceUnavailable)
		}
		return response.JSON(map[string]any{"status": "ready", "checks": results})
	}
}
