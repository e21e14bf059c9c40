package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelcraft/travelcraft/app/auth"
	"github.com/travelcraft/travelcraft/core/cookie"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/core/sessiontransport"
	"github.com/travelcraft/travelcraft/middleware"
)

const secret = "auth-test-secret-with-32-chars!!"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stack struct {
	srv      *httptest.Server
	client   *http.Client
	sessions *session.MemoryStore[auth.SessionData]
	users    *auth.MemoryUserStore
	cookies  *cookie.Manager
	clock    *clock
}

func newStack(t *testing.T, cfg auth.Config) *stack {
	t.Helper()

	clk := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	sessions := session.NewMemoryStore[auth.SessionData]()
	mgr := session.NewManager[auth.SessionData](sessions, session.WithClock(clk.Now))
	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)
	transport := sessiontransport.NewCookie(mgr, cookies, "")

	users := auth.NewMemoryUserStore()
	cfg.BcryptCost = bcrypt.MinCost
	svc := auth.NewService(users, cfg, auth.WithClock(clk.Now))

	r := router.New(router.NewContext)
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, auth.SessionData]{
		Transport: transport,
		Now:       clk.Now,
	}))
	auth.NewHandler(svc, cfg, nil).Register(r,
		middleware.RequireUser[*router.Context, auth.SessionData](svc.Identity, middleware.AuthConfig{}))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &stack{
		srv:      srv,
		client:   &http.Client{Jar: jar},
		sessions: sessions,
		users:    users,
		cookies:  cookies,
		clock:    clk,
	}
}

func (s *stack) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// current returns the stored session the client's cookie points at.
func (s *stack) current(t *testing.T) (session.Session[auth.SessionData], bool) {
	t.Helper()

	u, err := url.Parse(s.srv.URL)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, s.srv.URL, nil)
	for _, c := range s.client.Jar.Cookies(u) {
		req.AddCookie(c)
	}
	token, err := s.cookies.GetSigned(req, sessiontransport.DefaultCookieName)
	if err != nil {
		return session.Session[auth.SessionData]{}, false
	}
	sess, err := s.sessions.GetByToken(req.Context(), token)
	if err != nil {
		return session.Session[auth.SessionData]{}, false
	}
	return *sess, true
}

func (s *stack) signUp(t *testing.T, email, password string) {
	t.Helper()
	status, _ := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Jane", "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, status)
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("creates user and signs in", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		status, body := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Jane", "email": " A@B.com ", "password": "correct",
		})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "User Sign Up successful", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "a@b.com", user["email"])
		assert.NotContains(t, user, "password_hash")

		status, body = s.do(t, http.MethodGet, "/api/auth/me", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Jane", body["user"].(map[string]any)["name"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		s.signUp(t, "a@b.com", "correct")

		status, body := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Other", "email": "A@b.com", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "User already exists", body["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		status, _ := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{"email": "a@b.com"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials then heartbeat", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		s.signUp(t, "a@b.com", "correct")
		s.do(t, http.MethodPost, "/api/auth/logout", nil)

		status, body := s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
			"email": "a@b.com", "password": "correct",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "a@b.com", body["user"].(map[string]any)["email"])

		status, body = s.do(t, http.MethodGet, "/api/auth/heartbeat", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["authenticated"])
	})

	t.Run("wrong password leaves session anonymous", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		s.signUp(t, "a@b.com", "correct")
		s.do(t, http.MethodPost, "/api/auth/logout", nil)

		status, body := s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
			"email": "a@b.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid credentials (password)", body["message"])

		status, body = s.do(t, http.MethodGet, "/api/auth/heartbeat", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		status, body := s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
			"email": "nobody@b.com", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid credentials (email)", body["message"])
	})

	t.Run("generic credential errors", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{GenericCredentialErrors: true})
		s.signUp(t, "a@b.com", "correct")

		_, unknown := s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
			"email": "nobody@b.com", "password": "x",
		})
		_, wrong := s.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
			"email": "a@b.com", "password": "x",
		})
		assert.Equal(t, "Invalid credentials", unknown["message"])
		assert.Equal(t, unknown["message"], wrong["message"])
	})
}

func TestHeartbeat(t *testing.T) {
	t.Parallel()

	s := newStack(t, auth.Config{})
	s.signUp(t, "a@b.com", "correct")

	before, ok := s.current(t)
	require.True(t, ok)

	for range 3 {
		s.clock.Advance(2 * time.Minute)
		status, _ := s.do(t, http.MethodGet, "/api/auth/heartbeat", nil)
		require.Equal(t, http.StatusOK, status)
	}

	after, ok := s.current(t)
	require.True(t, ok)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.UserID, after.UserID)
	assert.Equal(t, before.ExpiresAt.Add(6*time.Minute), after.ExpiresAt)
	assert.Equal(t, s.clock.Now().Add(session.DefaultTTL), after.ExpiresAt)
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	s := newStack(t, auth.Config{})
	s.signUp(t, "a@b.com", "correct")

	s.clock.Advance(session.DefaultTTL + time.Second)

	status, body := s.do(t, http.MethodGet, "/api/auth/heartbeat", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["authenticated"])

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	s := newStack(t, auth.Config{})
	s.signUp(t, "a@b.com", "correct")
	sess, ok := s.current(t)
	require.True(t, ok)

	status, body := s.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", body["message"])

	_, err := s.sessions.GetByID(t.Context(), sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Zero(t, s.sessions.Len())

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCleanupSession(t *testing.T) {
	t.Parallel()

	s := newStack(t, auth.Config{})
	s.signUp(t, "a@b.com", "correct")

	for range 2 {
		status, body := s.do(t, http.MethodPost, "/api/auth/cleanup-session", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Session cleaned up", body["message"])
	}

	status, _ := s.do(t, http.MethodGet, "/api/auth/heartbeat", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		status, body := s.do(t, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "No token provided", body["message"])
	})

	t.Run("deleted user invalidates session", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, auth.Config{})
		s.signUp(t, "a@b.com", "correct")
		sess, ok := s.current(t)
		require.True(t, ok)

		s.users.Remove(sess.UserID)

		status, body := s.do(t, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", body["message"])

		_, err := s.sessions.GetByID(t.Context(), sess.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}
