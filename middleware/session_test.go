package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type testSessionData struct {
	Theme string
}

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Load(ctx handler.Context) (session.Session[testSessionData], error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Session[testSessionData]), args.Error(1)
}

func (m *mockTransport) Store(ctx handler.Context, sess session.Session[testSessionData]) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func anonymous(t *testing.T) session.Session[testSessionData] {
	t.Helper()
	sess, err := session.New[testSessionData](session.NewSessionParams{IP: "127.0.0.1"}, time.Now(), time.Hour)
	require.NoError(t, err)
	return sess
}

func newSessionRouter(transport middleware.SessionTransport[testSessionData]) *router.Router[*router.Context] {
	r := router.New(router.NewContext)
	r.Use(middleware.Session[*router.Context, testSessionData](transport))
	return r
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("exposes loaded session and commits it", func(t *testing.T) {
		t.Parallel()

		sess := anonymous(t)
		transport := &mockTransport{}
		transport.On("Load", mock.Anything).Return(sess, nil)
		transport.On("Store", mock.Anything, mock.MatchedBy(func(s session.Session[testSessionData]) bool {
			return s.ID == sess.ID && s.Data.Theme == "dark"
		})).Return(nil).Once()

		r := newSessionRouter(transport)
		r.Get("/", func(ctx *router.Context) handler.Response {
			sc, ok := middleware.GetSession[testSessionData](ctx)
			require.True(t, ok)
			assert.Equal(t, sess.ID, sc.Session().ID)
			assert.False(t, sc.IsAuthenticated())
			sc.SetData(testSessionData{Theme: "dark"})
			return response.JSON(map[string]string{"status": "ok"})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		transport.AssertExpectations(t)
	})

	t.Run("authenticate is visible to the commit", func(t *testing.T) {
		t.Parallel()

		sess := anonymous(t)
		userID := uuid.New()
		transport := &mockTransport{}
		transport.On("Load", mock.Anything).Return(sess, nil)
		transport.On("Store", mock.Anything, mock.MatchedBy(func(s session.Session[testSessionData]) bool {
			return s.UserID == userID && s.ID == sess.ID && s.Token != sess.Token
		})).Return(nil).Once()

		r := newSessionRouter(transport)
		r.Post("/signin", func(ctx *router.Context) handler.Response {
			sc := middleware.MustGetSession[testSessionData](ctx)
			require.NoError(t, sc.Authenticate(userID, "a@example.com"))
			return response.Message("ok")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		transport.AssertExpectations(t)
	})

	t.Run("destroy is committed as deleted", func(t *testing.T) {
		t.Parallel()

		sess := anonymous(t)
		transport := &mockTransport{}
		transport.On("Load", mock.Anything).Return(sess, nil)
		transport.On("Store", mock.Anything, mock.MatchedBy(func(s session.Session[testSessionData]) bool {
			return s.IsDeleted()
		})).Return(nil).Once()

		r := newSessionRouter(transport)
		r.Post("/logout", func(ctx *router.Context) handler.Response {
			sc := middleware.MustGetSession[testSessionData](ctx)
			sc.Destroy()
			sc.Destroy()
			return response.Message("bye")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		transport.AssertExpectations(t)
	})

	t.Run("load failure is a server error and skips the handler", func(t *testing.T) {
		t.Parallel()

		transport := &mockTransport{}
		transport.On("Load", mock.Anything).Return(session.Session[testSessionData]{}, session.ErrStoreUnavailable)

		called := false
		r := newSessionRouter(transport)
		r.Get("/", func(ctx *router.Context) handler.Response {
			called = true
			return response.NoContent()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, called)
		transport.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("commit failure replaces the handler response", func(t *testing.T) {
		t.Parallel()

		transport := &mockTransport{}
		transport.On("Load", mock.Anything).Return(anonymous(t), nil)
		transport.On("Store", mock.Anything, mock.Anything).Return(errors.Join(session.ErrSaveSession, session.ErrStoreUnavailable))

		r := newSessionRouter(transport)
		r.Get("/", func(ctx *router.Context) handler.Response {
			return response.JSON(map[string]bool{"authenticated": true})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "authenticated")
	})

	t.Run("skip bypasses load and store", func(t *testing.T) {
		t.Parallel()

		transport := &mockTransport{}
		r := router.New(router.NewContext)
		r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testSessionData]{
			Transport: transport,
			Skip: func(ctx *router.Context) bool {
				return ctx.Request().URL.Path == "/health"
			},
		}))
		r.Get("/health", func(ctx *router.Context) handler.Response {
			_, ok := middleware.GetSession[testSessionData](ctx)
			assert.False(t, ok)
			return response.NoContent()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		transport.AssertNotCalled(t, "Load", mock.Anything)
	})

	t.Run("panics without transport", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testSessionData]{})
		})
	})
}
