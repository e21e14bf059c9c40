package contact_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/app/contact"
	"github.com/travelcraft/travelcraft/core/email"
	"github.com/travelcraft/travelcraft/core/router"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRouter(store contact.Store, sender email.EmailSender) *router.Router[*router.Context] {
	r := router.New(router.NewContext)
	contact.NewHandler(store, sender, "support@travelcraft.app", nil).Register(r)
	return r
}

const validBody = `{"name":"Jane","email":"jane@example.com","subject":"Lisbon","message":"Best season?"}`

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("stores and notifies", func(t *testing.T) {
		t.Parallel()

		store := contact.NewMemoryStore()
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "support@travelcraft.app" && p.ReplyTo == "jane@example.com" &&
				strings.Contains(p.BodyText, "Best season?")
		})).Return(nil).Once()

		w := post(newRouter(store, sender), validBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Message sent successfully!")
		require.Len(t, store.Messages(), 1)
		assert.Equal(t, "Lisbon", store.Messages()[0].Subject)
		sender.AssertExpectations(t)
	})

	t.Run("notification failure still succeeds", func(t *testing.T) {
		t.Parallel()

		store := contact.NewMemoryStore()
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("postmark down"))

		w := post(newRouter(store, sender), validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, store.Messages(), 1)
	})

	t.Run("all fields are required", func(t *testing.T) {
		t.Parallel()

		store := contact.NewMemoryStore()
		w := post(newRouter(store, nil), `{"name":"Jane","email":"jane@example.com","subject":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields are required")
		assert.Empty(t, store.Messages())
	})
}
