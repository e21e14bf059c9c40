package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the public projection of an account.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// API talks to the TravelCraft auth endpoints. The session cookie lives in
// the HTTP client's cookie jar.
type API struct {
	base *url.URL
	http *http.Client
}

// APIOption configures an API.
type APIOption func(*API)

// WithHTTPClient replaces the default client. It must carry a cookie jar.
func WithHTTPClient(c *http.Client) APIOption {
	return func(a *API) {
		if c != nil {
			a.http = c
		}
	}
}

// NewAPI creates a client for the server at baseURL with its own cookie jar.
func NewAPI(baseURL string, opts ...APIOption) (*API, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	a := &API{
		base: u,
		http: &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Cookies returns the cookies the jar holds for the API origin.
func (a *API) Cookies() []*http.Cookie {
	if a.http.Jar == nil {
		return nil
	}
	return a.http.Jar.Cookies(a.base)
}

// SetCookies seeds the jar, e.g. from a persisted CLI session.
func (a *API) SetCookies(cookies []*http.Cookie) {
	if a.http.Jar != nil {
		a.http.Jar.SetCookies(a.base, cookies)
	}
}

// Heartbeat reports whether the server considers the session authenticated.
// A 401 is a definitive false, not an error.
func (a *API) Heartbeat(ctx context.Context) (bool, error) {
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	err := a.do(ctx, "heartbeat", http.MethodGet, "/api/auth/heartbeat", nil, &out)
	if errors.Is(err, ErrUnauthenticated) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Authenticated, nil
}

// CleanupSession asks the server to destroy the session. Safe to repeat.
func (a *API) CleanupSession(ctx context.Context) error {
	return a.do(ctx, "cleanup-session", http.MethodPost, "/api/auth/cleanup-session", nil, nil)
}

// Me returns the signed-in user.
func (a *API) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := a.do(ctx, "me", http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// SignIn authenticates with email and password.
func (a *API) SignIn(ctx context.Context, email, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, "signin", http.MethodPost, "/api/auth/signin", in, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// SignUp registers a user and signs in.
func (a *API) SignUp(ctx context.Context, name, email, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := a.do(ctx, "signup", http.MethodPost, "/api/auth/signup", in, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Logout ends the server session.
func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, "logout", http.MethodPost, "/api/auth/logout", nil, nil)
}

func (a *API) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	return nil
}
