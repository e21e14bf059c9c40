package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
)

var (
	// ErrNoSession means the request carries no authenticated session.
	ErrNoSession = errors.New("no authenticated session")
	// ErrInvalidSession means the session names a user that no longer resolves.
	ErrInvalidSession = errors.New("session user is invalid")
	// ErrIdentityNotFound is returned by an IdentityLoader for unknown users.
	ErrIdentityNotFound = errors.New("identity not found")
)

// Identity is the resolved caller attached to authenticated requests.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// IdentityLoader resolves a user id bound to a session.
type IdentityLoader func(ctx context.Context, userID uuid.UUID) (Identity, error)

type identityKey struct{}

// AuthConfig configures RequireUser.
type AuthConfig struct {
	Logger *slog.Logger
}

// RequireUser resolves the session's user and rejects the request with 401
// when there is none. A session pointing at a vanished user is destroyed.
// Lookup failures are not retried. Must be mounted after Session.
func RequireUser[C handler.Context, Data any](load IdentityLoader, cfg AuthConfig) handler.Middleware[C] {
	if load == nil {
		panic("auth middleware: identity loader is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	unauthorized := func(msg string) handler.Response {
		return response.Error(response.ErrUnauthorized.WithMessage(msg))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			sc, ok := GetSession[Data](ctx)
			if !ok || !sc.IsAuthenticated() {
				return unauthorized("No token provided")
			}

			userID := sc.UserID()
			identity, err := load(ctx, userID)
			switch {
			case err == nil:
			case errors.Is(err, ErrIdentityNotFound):
				cfg.Logger.WarnContext(ctx, "session bound to unknown user",
					logger.Component("auth"), logger.UserID(userID), logger.Error(ErrInvalidSession))
				sc.Destroy()
				return unauthorized("Invalid token")
			default:
				cfg.Logger.ErrorContext(ctx, "failed to resolve session user",
					logger.Component("auth"), logger.UserID(userID), logger.Error(err))
				return unauthorized("Invalid token")
			}

			ctx.SetValue(identityKey{}, identity)
			return next(ctx)
		}
	}
}

// GetIdentity returns the caller resolved by RequireUser.
func GetIdentity(ctx handler.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
