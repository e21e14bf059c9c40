package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/travelcraft/travelcraft/core/logger"
)

// ExpiredNotice is shown once after the session ends without a logout.
const ExpiredNotice = "Your session has expired due to inactivity. Please sign in again."

// AuthState is the single source of truth for "is the user signed in".
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthAnonymous
	AuthAuthenticated
	AuthExpired
)

func (s AuthState) String() string {
	switch s {
	case AuthAnonymous:
		return "anonymous"
	case AuthAuthenticated:
		return "authenticated"
	case AuthExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// AuthAPI is the server surface the auth manager drives.
type AuthAPI interface {
	Me(ctx context.Context) (User, error)
	SignIn(ctx context.Context, email, password string) (User, error)
	SignUp(ctx context.Context, name, email, password string) (User, error)
	Logout(ctx context.Context) error
}

// SessionController is the part of SessionManager the auth manager needs.
type SessionController interface {
	Activate()
	Deactivate()
	Subscribe(fn func(State)) func()
}

// AuthManager tracks who is signed in and drives the session manager.
type AuthManager struct {
	api      AuthAPI
	sessions SessionController
	logger   *slog.Logger
	logout   singleflight.Group
	unsub    func()

	mu         sync.Mutex
	state      AuthState
	user       User
	notice     string
	gen        uint64
	loggingOut int
}

// AuthOption configures an AuthManager.
type AuthOption func(*AuthManager)

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(a *AuthManager) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthManager creates a manager subscribed to sessions.
func NewAuthManager(api AuthAPI, sessions SessionController, opts ...AuthOption) *AuthManager {
	a := &AuthManager{
		api:      api,
		sessions: sessions,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.unsub = sessions.Subscribe(a.onSessionState)
	return a
}

// Close detaches the manager from the session manager.
func (a *AuthManager) Close() {
	a.unsub()
}

// State returns the current auth state.
func (a *AuthManager) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// User returns the signed-in user.
func (a *AuthManager) User() (User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.state == AuthAuthenticated
}

// TakeNotice returns the pending expiry notice once.
func (a *AuthManager) TakeNotice() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.notice
	a.notice = ""
	return n, n != ""
}

// Init resolves the current user. A 401 yields Anonymous; transport and
// server failures keep the state Unknown and are returned to the caller.
// A signed-in user starts heartbeat polling.
func (a *AuthManager) Init(ctx context.Context) error {
	a.mu.Lock()
	gen := a.gen
	a.mu.Unlock()

	user, err := a.api.Me(ctx)

	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return nil
	}

	switch {
	case err == nil:
		a.setLocked(AuthAuthenticated, user)
		a.notice = ""
		a.mu.Unlock()
		a.sessions.Activate()
		return nil
	case errors.Is(err, ErrUnauthenticated):
		a.setLocked(AuthAnonymous, User{})
		a.mu.Unlock()
		return nil
	default:
		a.mu.Unlock()
		a.logger.WarnContext(ctx, "who-am-i failed", logger.Component("auth_manager"), logger.Error(err))
		return err
	}
}

// SignIn authenticates and starts heartbeat polling.
func (a *AuthManager) SignIn(ctx context.Context, email, password string) (User, error) {
	user, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	a.authenticated(user)
	return user, nil
}

// SignUp registers, signs in and starts heartbeat polling.
func (a *AuthManager) SignUp(ctx context.Context, name, email, password string) (User, error) {
	user, err := a.api.SignUp(ctx, name, email, password)
	if err != nil {
		return User{}, err
	}
	a.authenticated(user)
	return user, nil
}

// Logout stops polling, sends one logout request shared by concurrent
// callers and clears the user whatever the server answers. Logging out while
// already anonymous sends nothing. Idle expiry reported during a logout is
// ignored.
func (a *AuthManager) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.loggingOut++
	anonymous := a.state == AuthAnonymous
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.loggingOut--
		a.mu.Unlock()
	}()

	a.sessions.Deactivate()
	if anonymous {
		return nil
	}

	_, err, _ := a.logout.Do("logout", func() (any, error) {
		err := a.api.Logout(ctx)
		if err != nil && !errors.Is(err, ErrUnauthenticated) {
			a.logger.WarnContext(ctx, "logout request failed", logger.Component("auth_manager"), logger.Error(err))
		}

		a.mu.Lock()
		a.setLocked(AuthAnonymous, User{})
		a.notice = ""
		a.mu.Unlock()
		return nil, err
	})
	if errors.Is(err, ErrUnauthenticated) {
		return nil
	}
	return err
}

func (a *AuthManager) authenticated(user User) {
	a.mu.Lock()
	a.setLocked(AuthAuthenticated, user)
	a.notice = ""
	a.mu.Unlock()

	a.sessions.Activate()
}

func (a *AuthManager) onSessionState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s != StateInactive || a.state != AuthAuthenticated || a.loggingOut > 0 {
		return
	}
	a.setLocked(AuthExpired, User{})
	a.notice = ExpiredNotice
	a.logger.Info("session expired", logger.Component("auth_manager"))
}

func (a *AuthManager) setLocked(s AuthState, u User) {
	a.gen++
	a.state = s
	a.user = u
}
