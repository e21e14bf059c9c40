package chat

import (
	"errors"
	"log/slog"
	"time"

	"github.com/travelcraft/travelcraft/core/binder"
	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/pkg/chat"
)

// Handler proxies POST /api/chat to a language model provider.
type Handler struct {
	providers chat.Registry
	logger    *slog.Logger
}

// NewHandler creates the chat handler over the configured providers.
func NewHandler(providers chat.Registry, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{providers: providers, logger: log}
}

// Register mounts POST /api/chat.
func (h *Handler) Register(r *router.Router[*router.Context]) {
	r.Post("/api/chat", h.Ask)
}

type askRequest struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

type askResponse struct {
	Response string `json:"response"`
}

// Ask forwards the message to the requested provider.
func (h *Handler) Ask(ctx *router.Context) handler.Response {
	var req askRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}
	if req.Message == "" {
		return response.Error(response.ErrBadRequest.WithMessage("Message is required"))
	}

	c, err := h.providers.Get(req.Provider)
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrUnknownProvider):
		return response.Error(response.ErrBadRequest.WithMessage("Invalid provider"))
	default:
		return response.Error(response.ErrServiceUnavailable.WithMessage("Provider is not configured"))
	}

	start := time.Now()
	answer, err := c.Complete(ctx, req.Message)
	if err != nil {
		h.logger.ErrorContext(ctx, "chat completion failed",
			logger.Component("chat"), logger.Provider(req.Provider), logger.Error(err))
		return response.Error(response.ErrBadGateway.WithMessage("Chat provider request failed"))
	}

	h.logger.DebugContext(ctx, "chat completion",
		logger.Component("chat"), logger.Provider(req.Provider), logger.Duration(time.Since(start)))
	return response.JSON(askResponse{Response: answer})
}
