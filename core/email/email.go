package email

import (
	"context"
	"fmt"
	"net/mail"
)

// EmailSender delivers a single message.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outgoing message. At least one body is required.
type SendEmailParams struct {
	SendTo   string
	ReplyTo  string
	Subject  string
	BodyHTML string
	BodyText string
	Tag      string
}

// Validate checks the recipient, subject and body.
func (p SendEmailParams) Validate() error {
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidParams, p.SendTo)
	}
	if p.ReplyTo != "" {
		if _, err := mail.ParseAddress(p.ReplyTo); err != nil {
			return fmt.Errorf("%w: invalid reply-to %q", ErrInvalidParams, p.ReplyTo)
		}
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" && p.BodyText == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// Config selects and configures the sender.
type Config struct {
	// DevDir, when set, makes the application write mail to disk instead of
	// sending it through Postmark.
	DevDir       string `env:"EMAIL_DEV_DIR"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"support@travelcraft.app"`
}
