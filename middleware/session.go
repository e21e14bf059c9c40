package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/session"
)

type sessionKey struct{}

// SessionTransport loads the request's session and writes its final state back.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionContext is the request's handle on its session. Handlers mutate the
// session only through it; the middleware commits whatever it holds once the
// handler returns.
type SessionContext[Data any] struct {
	mu   sync.Mutex
	sess session.Session[Data]
	now  func() time.Time
}

// Session returns a snapshot of the current session state.
func (s *SessionContext[Data]) Session() session.Session[Data] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// UserID returns the bound user, or uuid.Nil for anonymous sessions.
func (s *SessionContext[Data]) UserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.UserID
}

// IsAuthenticated reports whether the session belongs to a signed-in user.
func (s *SessionContext[Data]) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.IsAuthenticated()
}

// Authenticate binds the session to a user and rotates its token.
func (s *SessionContext[Data]) Authenticate(userID uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Authenticate(userID, email)
}

// SetData replaces the session's application data.
func (s *SessionContext[Data]) SetData(data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.SetData(data)
}

// Destroy marks the session for deletion. Calling it twice is harmless.
func (s *SessionContext[Data]) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.IsDeleted() {
		return
	}
	s.sess.Destroy(s.now())
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip bypasses session handling for matching requests.
	Skip      func(ctx C) bool
	Transport SessionTransport[Data]
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Now stamps destroyed sessions. Defaults to time.Now.
	Now func() time.Time
	// ErrorHandler renders store failures. Defaults to a 503 JSON error.
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session loads the session for every request and commits it afterwards.
//
//	r.Use(middleware.Session[*router.Context, auth.SessionData](transport))
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C, Data]{Transport: transport})
}

// SessionWithConfig is Session with explicit configuration.
//
// A transport that cannot reach the store fails the request with a 5xx
// response; the request is never served as if it were anonymous or
// authenticated. Commit failures are reported the same way, replacing the
// handler's response before anything has been written.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ C, err error) handler.Response {
			return response.Error(response.ErrServiceUnavailable.WithMessage("Session store unavailable"))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "failed to load session",
					logger.Component("session"), logger.Error(err))
				return cfg.ErrorHandler(ctx, err)
			}

			sc := &SessionContext[Data]{sess: sess, now: cfg.Now}
			ctx.SetValue(sessionKey{}, sc)

			resp := next(ctx)

			final := sc.Session()
			if err := cfg.Transport.Store(ctx, final); err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to store session",
					logger.Component("session"),
					logger.SessionID(final.ID),
					logger.UserID(final.UserID),
					logger.Error(err))
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession returns the request's session handle.
func GetSession[Data any](ctx handler.Context) (*SessionContext[Data], bool) {
	if ctx == nil {
		return nil, false
	}
	sc, ok := ctx.Value(sessionKey{}).(*SessionContext[Data])
	return sc, ok
}

// MustGetSession is GetSession for routes mounted behind the session middleware.
func MustGetSession[Data any](ctx handler.Context) *SessionContext[Data] {
	sc, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sc
}
