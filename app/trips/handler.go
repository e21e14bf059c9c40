package trips

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/travelcraft/travelcraft/core/binder"
	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/middleware"
)

// Handler serves /api/posts for the signed-in user.
type Handler struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates the post handler over store.
func NewHandler(store Store, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{store: store, logger: log, now: time.Now}
}

// Register mounts the post routes behind requireUser.
func (h *Handler) Register(r *router.Router[*router.Context], requireUser handler.Middleware[*router.Context]) {
	r.Route("/api/posts", func(r *router.Router[*router.Context]) {
		r.Use(requireUser)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

type postRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var errNotFound = response.ErrNotFound.WithMessage("Post not found or not owned by user")

// List returns the caller's posts, newest first.
func (h *Handler) List(ctx *router.Context) handler.Response {
	owner := mustOwner(ctx)
	posts, err := h.store.List(ctx, owner)
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(posts)
}

// Create stores a new post owned by the caller.
func (h *Handler) Create(ctx *router.Context) handler.Response {
	var req postRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}
	if req.Title == "" || req.Description == "" {
		return response.Error(response.ErrBadRequest.WithMessage("Title and description are required"))
	}

	p := Post{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserID:      mustOwner(ctx),
		CreatedAt:   h.now(),
	}
	if err := h.store.Create(ctx, p); err != nil {
		return h.fail(ctx, err)
	}
	return response.Created(p)
}

// Get returns one of the caller's posts.
func (h *Handler) Get(ctx *router.Context) handler.Response {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return response.Error(errNotFound)
	}
	p, err := h.store.Get(ctx, mustOwner(ctx), id)
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(p)
}

// Update replaces only the fields present in the request.
func (h *Handler) Update(ctx *router.Context) handler.Response {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return response.Error(errNotFound)
	}
	var req postRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}

	p, err := h.store.Get(ctx, mustOwner(ctx), id)
	if err != nil {
		return h.fail(ctx, err)
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if err := h.store.Update(ctx, p); err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(p)
}

// Delete removes one of the caller's posts.
func (h *Handler) Delete(ctx *router.Context) handler.Response {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return response.Error(errNotFound)
	}
	if err := h.store.Delete(ctx, mustOwner(ctx), id); err != nil {
		return h.fail(ctx, err)
	}
	return response.Message("Post deleted successfully")
}

func (h *Handler) fail(ctx *router.Context, err error) handler.Response {
	if errors.Is(err, ErrPostNotFound) {
		return response.Error(errNotFound)
	}
	h.logger.ErrorContext(ctx, "post store failed", logger.Component("trips"), logger.Error(err))
	return response.Error(response.ErrInternalServerError)
}

func mustOwner(ctx *router.Context) uuid.UUID {
	id, ok := middleware.GetIdentity(ctx)
	if !ok {
		panic("trips: handler mounted without RequireUser")
	}
	return id.ID
}
