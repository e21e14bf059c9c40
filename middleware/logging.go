package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
)

// LoggingConfig configures request logging.
type LoggingConfig[C handler.Context] struct {
	Skip   func(ctx C) bool
	Logger *slog.Logger
	// SlowRequestThreshold logs slower requests at warning level (default: 5s).
	SlowRequestThreshold time.Duration
	// Now is the clock used for durations. Defaults to time.Now.
	Now func() time.Time
}

// Logging logs one line per request with its outcome.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig(LoggingConfig[C]{Logger: log})
}

// LoggingWithConfig is Logging with explicit configuration. Request ids come
// from chi's RequestID middleware when it is installed.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig[C]) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := cfg.Now()
			resp := next(ctx)
			req := ctx.Request()

			return func(w http.ResponseWriter, r *http.Request) error {
				ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
				var err error
				if resp != nil {
					err = resp(ww, r)
				}

				status := ww.status
				if err != nil && !ww.wroteHeader {
					status = statusFromError(err)
				}
				elapsed := cfg.Now().Sub(start)

				attrs := []slog.Attr{
					logger.Component("http"),
					logger.RequestID(chimw.GetReqID(req.Context())),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(status),
					logger.Duration(elapsed),
				}
				if id, ok := GetIdentity(ctx); ok {
					attrs = append(attrs, logger.UserID(id.ID))
				}

				level := slog.LevelInfo
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case elapsed > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(req.Context(), level, "http request", attrs...)
				return err
			}
		}
	}
}

func statusFromError(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
