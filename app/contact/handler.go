package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/travelcraft/travelcraft/core/binder"
	"github.com/travelcraft/travelcraft/core/email"
	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/router"
)

const notifyTimeout = 10 * time.Second

// Handler serves POST /api/contact.
type Handler struct {
	store   Store
	sender  email.EmailSender
	support string
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates the contact handler. sender may be nil, in which case
// messages are only stored.
func NewHandler(store Store, sender email.EmailSender, supportEmail string, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{store: store, sender: sender, support: supportEmail, logger: log, now: time.Now}
}

// Register mounts POST /api/contact.
func (h *Handler) Register(r *router.Router[*router.Context]) {
	r.Post("/api/contact", h.Submit)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit stores the message, then notifies support. Notification failures
// are logged and do not fail the request.
func (h *Handler) Submit(ctx *router.Context) handler.Response {
	var req submitRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("Invalid request body").WithError(err))
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return response.Error(response.ErrBadRequest.WithMessage("All fields are required"))
	}

	msg := Message{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: h.now(),
	}
	if err := h.store.Save(ctx, msg); err != nil {
		h.logger.ErrorContext(ctx, "failed to save contact message", logger.Component("contact"), logger.Error(err))
		return response.Error(response.ErrInternalServerError)
	}

	h.notify(ctx, msg)
	return response.Message("Message sent successfully!")
}

func (h *Handler) notify(ctx context.Context, m Message) {
	if h.sender == nil || h.support == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := h.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   h.support,
		ReplyTo:  m.Email,
		Subject:  "Contact: " + m.Subject,
		BodyText: fmt.Sprintf("From: %s <%s>\n\n%s\n", m.Name, m.Email, m.Message),
		Tag:      "contact",
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to notify support", logger.Component("contact"), logger.Error(err))
	}
}
