package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session record. Data carries application values.
// A session with UserID == uuid.Nil is anonymous.
type Session[Data any] struct {
	// ID is stable for the whole lifetime of the session.
	ID uuid.UUID
	// Token is the opaque cookie value (32 random bytes, base64url). It is
	// rotated when the session is bound to a user.
	Token string

	UserID    uuid.UUID
	UserEmail string

	IP        string
	UserAgent string

	Data Data

	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpiresAt      time.Time
	// DeletedAt marks the session for removal at commit time.
	DeletedAt time.Time

	isModified bool
}

// NewSessionParams describes the client a session is created for.
type NewSessionParams struct {
	IP        string
	UserAgent string
}

// New creates an anonymous session expiring ttl after now.
func New[Data any](params NewSessionParams, now time.Time, ttl time.Duration) (Session[Data], error) {
	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	return Session[Data]{
		ID:             uuid.New(),
		Token:          token,
		IP:             params.IP,
		UserAgent:      params.UserAgent,
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(ttl),
		isModified:     true,
	}, nil
}

// Authenticate binds the session to a user and rotates the token.
// The session ID is preserved.
func (s *Session[Data]) Authenticate(userID uuid.UUID, email string) error {
	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = token
	s.UserID = userID
	s.UserEmail = email
	s.isModified = true
	return nil
}

// SetData replaces the application data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.isModified = true
}

// Destroy marks the session for deletion.
func (s *Session[Data]) Destroy(now time.Time) {
	s.DeletedAt = now
	s.isModified = true
}

// Touch slides the expiry to now+ttl once touchInterval has passed since
// the last access. A zero interval touches on every call.
func (s *Session[Data]) Touch(now time.Time, ttl, touchInterval time.Duration) {
	if now.Sub(s.LastAccessedAt) < touchInterval {
		return
	}
	s.LastAccessedAt = now
	s.ExpiresAt = now.Add(ttl)
	s.isModified = true
}

// IsAuthenticated reports whether the session is bound to a user.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != "" && s.DeletedAt.IsZero()
}

// IsDeleted reports whether the session was logged out.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session changed since it was loaded.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired reports whether the session is past its expiry at now.
func (s Session[Data]) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
