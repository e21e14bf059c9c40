package sessiontransport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/cookie"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/core/sessiontransport"
)

const secret = "test-secret-key-32-characters!!!"

type data struct{}

type downStore struct {
	session.Store[data]
}

func (downStore) GetByToken(context.Context, string) (*session.Session[data], error) {
	return nil, errors.Join(session.ErrStoreUnavailable, errors.New("connection refused"))
}

func newTransport(t *testing.T, store session.Store[data]) (*sessiontransport.Cookie[data], *session.Manager[data], *cookie.Manager) {
	t.Helper()
	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)
	mgr := session.NewManager[data](store)
	return sessiontransport.NewCookie(mgr, cookies, ""), mgr, cookies
}

func requestWith(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/auth/heartbeat", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCookie_Load(t *testing.T) {
	t.Parallel()

	t.Run("no cookie creates anonymous session", func(t *testing.T) {
		t.Parallel()

		transport, _, _ := newTransport(t, session.NewMemoryStore[data]())
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:51234"
		r.Header.Set("User-Agent", "tripctl/1.0")

		sess, err := transport.Load(router.NewContext(httptest.NewRecorder(), r))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, sess.ID)
		assert.False(t, sess.IsAuthenticated())
		assert.Equal(t, "203.0.113.7", sess.IP)
		assert.Equal(t, "tripctl/1.0", sess.UserAgent)
	})

	t.Run("stored cookie round trip", func(t *testing.T) {
		t.Parallel()

		transport, mgr, _ := newTransport(t, session.NewMemoryStore[data]())

		sess, err := mgr.New(session.NewSessionParams{})
		require.NoError(t, err)
		require.NoError(t, sess.Authenticate(uuid.New(), "ann@example.com"))

		w := httptest.NewRecorder()
		require.NoError(t, transport.Store(router.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), sess))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessiontransport.DefaultCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.InDelta(t, (30 * time.Minute).Seconds(), cookies[0].MaxAge, 2)

		loaded, err := transport.Load(router.NewContext(httptest.NewRecorder(), requestWith(t, w)))
		require.NoError(t, err)
		assert.Equal(t, sess.ID, loaded.ID)
		assert.True(t, loaded.IsAuthenticated())
	})

	t.Run("tampered cookie creates new session", func(t *testing.T) {
		t.Parallel()

		transport, _, _ := newTransport(t, session.NewMemoryStore[data]())
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessiontransport.DefaultCookieName, Value: "forged|sig"})

		sess, err := transport.Load(router.NewContext(httptest.NewRecorder(), r))
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("unknown token creates new session", func(t *testing.T) {
		t.Parallel()

		transport, _, cookies := newTransport(t, session.NewMemoryStore[data]())
		w := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(w, sessiontransport.DefaultCookieName, "gone"))

		sess, err := transport.Load(router.NewContext(httptest.NewRecorder(), requestWith(t, w)))
		require.NoError(t, err)
		assert.NotEqual(t, "gone", sess.Token)
	})

	t.Run("store failure is an error", func(t *testing.T) {
		t.Parallel()

		transport, _, cookies := newTransport(t, downStore{})
		w := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(w, sessiontransport.DefaultCookieName, "tok"))

		_, err := transport.Load(router.NewContext(httptest.NewRecorder(), requestWith(t, w)))
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
	})
}

func TestCookie_StoreDestroyed(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore[data]()
	transport, mgr, _ := newTransport(t, store)
	ctx := context.Background()

	sess, err := mgr.New(session.NewSessionParams{})
	require.NoError(t, err)
	sess, err = mgr.Commit(ctx, sess)
	require.NoError(t, err)

	sess.Destroy(mgr.Now())
	w := httptest.NewRecorder()
	require.NoError(t, transport.Store(router.NewContext(w, httptest.NewRequest(http.MethodPost, "/", nil)), sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Equal(t, 0, store.Len())
}
