package travelcraft

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/travelcraft/travelcraft/app/auth"
	appchat "github.com/travelcraft/travelcraft/app/chat"
	"github.com/travelcraft/travelcraft/app/contact"
	"github.com/travelcraft/travelcraft/app/trips"
	"github.com/travelcraft/travelcraft/core/cookie"
	"github.com/travelcraft/travelcraft/core/email"
	"github.com/travelcraft/travelcraft/core/health"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/core/server"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/core/sessiontransport"
	"github.com/travelcraft/travelcraft/integration/email/postmark"
	"github.com/travelcraft/travelcraft/middleware"
	"github.com/travelcraft/travelcraft/pkg/chat"
	"github.com/travelcraft/travelcraft/pkg/ratelimiter"
)

const rateLimitSweepInterval = 10 * time.Minute

// App is the composed HTTP API.
type App struct {
	config   Config
	logger   *slog.Logger
	stores   *Stores
	sessions *session.Manager[auth.SessionData]
	router   *router.Router[*router.Context]
	server   *server.Server
	sender   email.EmailSender
	chat     chat.Registry
	limiter  *ratelimiter.Limiter
}

// Option configures an App.
type Option func(*App) error

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l != nil {
			a.logger = l
		}
		return nil
	}
}

// WithStores skips OpenStores, e.g. for MemoryStores in tests.
func WithStores(s *Stores) Option {
	return func(a *App) error {
		a.stores = s
		return nil
	}
}

// WithEmailSender overrides the sender chosen from configuration.
func WithEmailSender(s email.EmailSender) Option {
	return func(a *App) error {
		a.sender = s
		return nil
	}
}

// WithChatRegistry overrides the chat providers built from configuration.
func WithChatRegistry(r chat.Registry) Option {
	return func(a *App) error {
		a.chat = r
		return nil
	}
}

// New wires stores, session handling and every route.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{config: cfg, logger: logger.Discard()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.stores == nil {
		s, err := OpenStores(ctx, cfg, a.logger)
		if err != nil {
			return nil, err
		}
		a.stores = s
	}

	if a.sender == nil {
		sender, err := newSender(cfg)
		if err != nil {
			return nil, err
		}
		a.sender = sender
	}

	if a.chat == nil {
		reg, err := chat.NewRegistry(ctx, cfg.Chat)
		if err != nil {
			return nil, err
		}
		a.chat = reg
	}

	limiter, err := ratelimiter.New(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	a.limiter = limiter

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, err
	}

	a.sessions = session.NewManager[auth.SessionData](a.stores.Sessions,
		session.WithConfig(cfg.Session),
		session.WithLogger(a.logger),
	)

	srv, err := server.New(cfg.Server, server.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.server = srv

	a.router = a.routes(sessiontransport.NewCookieFromConfig(cfg.SessionCookie, a.sessions, cookies))
	return a, nil
}

func newSender(cfg Config) (email.EmailSender, error) {
	switch {
	case cfg.Email.DevDir != "":
		return email.NewDevSender(cfg.Email.DevDir), nil
	case cfg.Postmark.Enabled():
		return postmark.New(cfg.Postmark)
	default:
		return nil, nil
	}
}

func (a *App) routes(transport middleware.SessionTransport[auth.SessionData]) *router.Router[*router.Context] {
	r := router.New(router.NewContext, router.WithHTTPMiddleware[*router.Context](
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(a.config.CORS),
	))
	r.Use(middleware.Logging[*router.Context](a.logger))

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](a.logger, a.config.ReadinessTimeout, a.stores.Checks...))

	appchat.NewHandler(a.chat, a.logger).Register(r)
	contact.NewHandler(a.stores.Messages, a.sender, a.config.Email.SupportEmail, a.logger).Register(r)

	svc := auth.NewService(a.stores.Users, a.config.Auth, auth.WithLogger(a.logger))
	requireUser := middleware.RequireUser[*router.Context, auth.SessionData](svc.Identity,
		middleware.AuthConfig{Logger: a.logger})

	r.Group(func(r *router.Router[*router.Context]) {
		r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, auth.SessionData]{
			Transport: transport,
			Logger:    a.logger,
		}))
		auth.NewHandler(svc, a.config.Auth, a.logger).Register(r, requireUser,
			middleware.RateLimit(middleware.RateLimitConfig[*router.Context]{Limiter: a.limiter, Logger: a.logger}))
		trips.NewHandler(a.stores.Posts, a.logger).Register(r, requireUser)
	})

	return r
}

// Handler exposes the router.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP and sweeps expired sessions until ctx is done, then closes
// the stores.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	g.Go(a.sessions.RunCleanup(ctx, a.config.Session.CleanupInterval))
	g.Go(a.limiter.RunCleanup(ctx, rateLimitSweepInterval))

	err := g.Wait()
	if cerr := a.stores.Close(context.WithoutCancel(ctx)); cerr != nil {
		a.logger.ErrorContext(ctx, "failed to close stores", logger.Component("app"), logger.Error(cerr))
	}
	return err
}
