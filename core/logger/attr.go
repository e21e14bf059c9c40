package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Helpers return an empty Attr for zero inputs, which slog drops, so call
// sites never need nil checks: log.Info("msg", logger.Error(err)).

// Error attaches err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the emitting subsystem.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID returns a request_id attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Method returns a method attribute.
func Method(method string) slog.Attr { return slog.String("method", method) }

// Path returns a path attribute.
func Path(path string) slog.Attr { return slog.String("path", path) }

// StatusCode returns a status_code attribute.
func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }

// ClientIP returns a client_ip attribute.
func ClientIP(ip string) slog.Attr { return slog.String("client_ip", ip) }

// UserID attaches an authenticated user id. uuid.Nil is dropped.
func UserID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("user_id", id.String())
}

// SessionID attaches a session id. uuid.Nil is dropped.
func SessionID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("session_id", id.String())
}

// Count records a counter under key.
func Count(key string, n int64) slog.Attr {
	return slog.Int64(key, n)
}

// Provider names an upstream provider (chat model vendor, mail service).
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}
