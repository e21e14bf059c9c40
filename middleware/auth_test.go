package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/response"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/middleware"
)

func authRouter(t *testing.T, sess session.Session[testSessionData], load middleware.IdentityLoader) (*router.Router[*router.Context], *mockTransport) {
	t.Helper()

	transport := &mockTransport{}
	transport.On("Load", mock.Anything).Return(sess, nil)
	transport.On("Store", mock.Anything, mock.Anything).Return(nil)

	r := newSessionRouter(transport)
	r.With(middleware.RequireUser[*router.Context, testSessionData](load, middleware.AuthConfig{})).
		Get("/me", func(ctx *router.Context) handler.Response {
			id, ok := middleware.GetIdentity(ctx)
			require.True(t, ok)
			return response.JSON(map[string]any{"user": id})
		})
	return r, transport
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Message
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	authenticated := func(t *testing.T) session.Session[testSessionData] {
		sess := anonymous(t)
		require.NoError(t, sess.Authenticate(userID, "jane@example.com"))
		return sess
	}

	t.Run("attaches identity", func(t *testing.T) {
		t.Parallel()

		r, _ := authRouter(t, authenticated(t), func(_ context.Context, id uuid.UUID) (middleware.Identity, error) {
			return middleware.Identity{ID: id, Email: "jane@example.com", Name: "Jane"}, nil
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "Jane")
	})

	t.Run("anonymous session is rejected without lookup", func(t *testing.T) {
		t.Parallel()

		r, _ := authRouter(t, anonymous(t), func(context.Context, uuid.UUID) (middleware.Identity, error) {
			t.Fatal("loader must not be called")
			return middleware.Identity{}, nil
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No token provided", decodeMessage(t, w))
	})

	t.Run("vanished user destroys the session", func(t *testing.T) {
		t.Parallel()

		r, transport := authRouter(t, authenticated(t), func(context.Context, uuid.UUID) (middleware.Identity, error) {
			return middleware.Identity{}, middleware.ErrIdentityNotFound
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decodeMessage(t, w))
		transport.AssertCalled(t, "Store", mock.Anything, mock.MatchedBy(func(s session.Session[testSessionData]) bool {
			return s.IsDeleted()
		}))
	})

	t.Run("lookup failure is unauthorized and keeps the session", func(t *testing.T) {
		t.Parallel()

		calls := 0
		r, transport := authRouter(t, authenticated(t), func(context.Context, uuid.UUID) (middleware.Identity, error) {
			calls++
			return middleware.Identity{}, errors.New("db down")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 1, calls)
		transport.AssertCalled(t, "Store", mock.Anything, mock.MatchedBy(func(s session.Session[testSessionData]) bool {
			return !s.IsDeleted() && s.UserID == userID
		}))
	})
}
