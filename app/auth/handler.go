package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/travelcraft/travelcraft/core/binder"
	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/middleware"
)

// Handler serves /api/auth. It expects the session middleware upstream.
type Handler struct {
	svc    *Service
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates the auth route handler.
func NewHandler(svc *Service, cfg Config, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, cfg: cfg, logger: log, now: time.Now}
}

// Register mounts the auth routes. requireUser guards /me; credentialGuards
// wrap signup and signin, e.g. with a rate limiter.
func (h *Handler) Register(r *router.Router[*router.Context], requireUser handler.Middleware[*router.Context], credentialGuards ...handler.Middleware[*router.Context]) {
	r.Route("/api/auth", func(r *router.Router[*router.Context]) {
		guarded := r.With(credentialGuards...)
		guarded.Post("/signup", h.SignUp)
		guarded.Post("/signin", h.SignIn)
		r.Post("/logout", h.Logout)
		r.Post("/cleanup-session", h.CleanupSession)
		r.Get("/heartbeat", h.Heartbeat)
		r.With(requireUser).Get("/me", h.Me)
	})
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Message string     `json:"message,omitempty"`
	User    PublicUser `json:"user"`
}

// SignUp creates the user and signs the current session in.
func (h *Handler) SignUp(ctx *router.Context) handler.Response {
	var req signUpRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}

	u, err := h.svc.SignUp(ctx, SignUpInput(req))
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingFields):
		return response.Error(response.ErrBadRequest.WithMessage("Name, email and password are required"))
	case errors.Is(err, ErrUserExists):
		return response.Error(response.ErrBadRequest.WithMessage("User already exists"))
	default:
		h.logger.ErrorContext(ctx, "sign up failed", logger.Component("auth"), logger.Error(err))
		return response.Error(response.ErrInternalServerError.WithMessage("Error Signing Up user"))
	}

	if err := h.bind(ctx, u); err != nil {
		return response.Error(err)
	}
	return response.Created(userResponse{Message: "User Sign Up successful", User: u.Public()})
}

// SignIn checks credentials and promotes the current session to the user.
func (h *Handler) SignIn(ctx *router.Context) handler.Response {
	var req signInRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}

	u, err := h.svc.SignIn(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingFields):
		return response.Error(response.ErrBadRequest.WithMessage("Email and password are required"))
	case errors.Is(err, ErrUserNotFound):
		h.logger.InfoContext(ctx, "sign in failed", logger.Component("auth"), logger.Event("unknown_email"))
		return response.Error(response.ErrBadRequest.WithMessage(h.credentialMessage("Invalid credentials (email)")))
	case errors.Is(err, ErrInvalidPassword):
		h.logger.InfoContext(ctx, "sign in failed", logger.Component("auth"), logger.Event("password_mismatch"))
		return response.Error(response.ErrBadRequest.WithMessage(h.credentialMessage("Invalid credentials (password)")))
	default:
		h.logger.ErrorContext(ctx, "sign in failed", logger.Component("auth"), logger.Error(err))
		return response.Error(response.ErrInternalServerError.WithMessage("Server error during login"))
	}

	if err := h.bind(ctx, u); err != nil {
		return response.Error(err)
	}
	return response.JSON(userResponse{Message: "Sign In successful", User: u.Public()})
}

func (h *Handler) credentialMessage(specific string) string {
	if h.cfg.GenericCredentialErrors {
		return "Invalid credentials"
	}
	return specific
}

// bind attaches u to the request's session, rotating its token.
func (h *Handler) bind(ctx *router.Context, u User) error {
	sc, ok := middleware.GetSession[SessionData](ctx)
	if !ok {
		return response.ErrInternalServerError.WithMessage("Session unavailable")
	}
	if err := sc.Authenticate(u.ID, u.Email); err != nil {
		h.logger.ErrorContext(ctx, "failed to bind session", logger.Component("auth"), logger.Error(err))
		return response.ErrInternalServerError.WithMessage("Session unavailable")
	}
	sc.SetData(SessionData{SignedInAt: h.now()})

	h.logger.InfoContext(ctx, "user signed in",
		logger.Component("auth"), logger.UserID(u.ID), logger.SessionID(sc.Session().ID))
	return nil
}

// Logout destroys the session record and clears the cookie.
func (h *Handler) Logout(ctx *router.Context) handler.Response {
	h.destroy(ctx)
	return response.Message("Logged out successfully")
}

// CleanupSession is the unload-time destroy. Repeating it is harmless.
func (h *Handler) CleanupSession(ctx *router.Context) handler.Response {
	h.destroy(ctx)
	return response.Message("Session cleaned up")
}

func (h *Handler) destroy(ctx *router.Context) {
	if sc, ok := middleware.GetSession[SessionData](ctx); ok {
		sc.Destroy()
	}
}

type heartbeatResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Heartbeat reports whether the session is bound to a user. The middleware's
// commit slides the expiry; the binding itself is never changed here.
func (h *Handler) Heartbeat(ctx *router.Context) handler.Response {
	sc, ok := middleware.GetSession[SessionData](ctx)
	if !ok || !sc.IsAuthenticated() {
		return response.JSONWithStatus(heartbeatResponse{Authenticated: false}, http.StatusUnauthorized)
	}
	return response.JSON(heartbeatResponse{Authenticated: true})
}

// Me returns the signed-in user.
func (h *Handler) Me(ctx *router.Context) handler.Response {
	id, ok := middleware.GetIdentity(ctx)
	if !ok {
		return response.Error(response.ErrUnauthorized.WithMessage("No token provided"))
	}
	return response.JSON(userResponse{User: PublicUser{ID: id.ID, Name: id.Name, Email: id.Email}})
}
