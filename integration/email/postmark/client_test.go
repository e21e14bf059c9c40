package postmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/email"
	"github.com/travelcraft/travelcraft/integration/email/postmark"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := postmark.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "noreply@travelcraft.app",
		SupportEmail:        "support@travelcraft.app",
	}
	c, err := postmark.New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.True(t, cfg.Enabled())

	missing := cfg
	missing.PostmarkServerToken = ""
	_, err = postmark.New(missing)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
	assert.False(t, missing.Enabled())

	badSender := cfg
	badSender.SenderEmail = "nope"
	_, err = postmark.New(badSender)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestSendEmail_InvalidParams(t *testing.T) {
	t.Parallel()

	c, err := postmark.New(postmark.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "noreply@travelcraft.app",
		SupportEmail:        "support@travelcraft.app",
	})
	require.NoError(t, err)

	err = c.SendEmail(t.Context(), email.SendEmailParams{SendTo: "nope"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
}
