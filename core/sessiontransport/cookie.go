package sessiontransport

import (
	"errors"
	"net"
	"net/http"

	"github.com/travelcraft/travelcraft/core/cookie"
	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/session"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "travelcraft_sid"

// CookieConfig is the environment-driven transport setup.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"travelcraft_sid"`
}

// Cookie carries Session.Token in a signed, HttpOnly cookie.
type Cookie[Data any] struct {
	manager *session.Manager[Data]
	cookies *cookie.Manager
	name    string
}

// NewCookie creates a cookie transport. An empty name selects DefaultCookieName.
func NewCookie[Data any](mgr *session.Manager[Data], cookies *cookie.Manager, name string) *Cookie[Data] {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie[Data]{manager: mgr, cookies: cookies, name: name}
}

// NewCookieFromConfig creates a cookie transport from cfg.
func NewCookieFromConfig[Data any](cfg CookieConfig, mgr *session.Manager[Data], cookies *cookie.Manager) *Cookie[Data] {
	return NewCookie(mgr, cookies, cfg.CookieName)
}

// Name returns the cookie name.
func (c *Cookie[Data]) Name() string {
	return c.name
}

// Load resolves the request's session. A missing, tampered, unknown or
// expired cookie yields a fresh anonymous session. Only store failures are
// returned as errors.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookies.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.newSession(ctx)
	}

	sess, err := c.manager.GetByToken(ctx, token)
	switch {
	case err == nil:
		return sess, nil
	case session.IsAbsent(err):
		return c.newSession(ctx)
	default:
		return session.Session[Data]{}, err
	}
}

// Store commits sess and mirrors the outcome on the cookie: cleared when the
// session was destroyed, refreshed with the remaining lifetime otherwise.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	committed, err := c.manager.Commit(ctx, sess)
	if err != nil {
		return err
	}

	w := ctx.ResponseWriter()
	if committed.IsDeleted() {
		c.cookies.Delete(w, c.name)
		return nil
	}

	maxAge := int(committed.ExpiresAt.Sub(c.manager.Now()).Seconds())
	if maxAge <= 0 {
		return errors.Join(ErrExpiredOnCommit, session.ErrExpired)
	}

	return c.cookies.SetSigned(w, c.name, committed.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(maxAge),
	)
}

func (c *Cookie[Data]) newSession(ctx handler.Context) (session.Session[Data], error) {
	r := ctx.Request()
	return c.manager.New(session.NewSessionParams{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// clientIP strips the port from RemoteAddr. Proxy headers are resolved
// upstream by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
