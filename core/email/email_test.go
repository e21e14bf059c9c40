package email_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "a@b.com", Subject: "Hi", BodyText: "hello"}
	require.NoError(t, valid.Validate())

	cases := map[string]func(p *email.SendEmailParams){
		"recipient": func(p *email.SendEmailParams) { p.SendTo = "nope" },
		"reply-to":  func(p *email.SendEmailParams) { p.ReplyTo = "nope" },
		"subject":   func(p *email.SendEmailParams) { p.Subject = "" },
		"body":      func(p *email.SendEmailParams) { p.BodyText = "" },
	}
	for name, mutate := range cases {
		p := valid
		mutate(&p)
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams, name)
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(t.Context(), email.SendEmailParams{
		SendTo:   "support@travelcraft.app",
		ReplyTo:  "jane@example.com",
		Subject:  "New contact message",
		BodyText: "Where should I go in May?",
		Tag:      "contact message",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var body, meta string
	for _, e := range entries {
		assert.Contains(t, e.Name(), "contact_message")
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		switch {
		case strings.HasSuffix(e.Name(), ".txt"):
			body = string(b)
		case strings.HasSuffix(e.Name(), ".json"):
			meta = string(b)
		}
	}
	assert.Equal(t, "Where should I go in May?", body)
	assert.Contains(t, meta, `"reply_to": "jane@example.com"`)
}
