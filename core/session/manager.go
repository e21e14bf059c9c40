package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/travelcraft/travelcraft/core/logger"
)

// Manager owns session lifecycle on top of a Store: creation, lookup with
// expiry checks, commit with rolling expiry, and the expiry sweep.
type Manager[Data any] struct {
	store Store[Data]
	opts  options
}

// NewManager creates a manager. Defaults: 30 minute TTL, touch on every request.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	o := options{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[Data]{store: store, opts: o}
}

// TTL returns the rolling expiry window.
func (m *Manager[Data]) TTL() time.Duration {
	return m.opts.ttl
}

// Now returns the manager's notion of the current time.
func (m *Manager[Data]) Now() time.Time {
	return m.opts.now()
}

// New creates an anonymous session. It is not persisted until Commit.
func (m *Manager[Data]) New(params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.opts.now(), m.opts.ttl)
}

// GetByToken loads a session by cookie token. Expired sessions yield ErrExpired.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	if token == "" {
		return Session[Data]{}, ErrNotFound
	}
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	return m.checkExpiry(ctx, sess)
}

// GetByID loads a session by id. Expired sessions yield ErrExpired.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}
	return m.checkExpiry(ctx, sess)
}

func (m *Manager[Data]) checkExpiry(ctx context.Context, sess *Session[Data]) (Session[Data], error) {
	if sess.IsExpired(m.opts.now()) {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			m.opts.logger.WarnContext(ctx, "failed to drop expired session",
				logger.Component("session"), logger.SessionID(sess.ID), logger.Error(err))
		}
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// Commit persists the request's final session state. Destroyed sessions are
// deleted from the store; live ones are touched and saved when modified.
// The returned session carries the refreshed expiry.
func (m *Manager[Data]) Commit(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	if sess.IsDeleted() {
		if err := m.Delete(ctx, sess.ID); err != nil {
			return sess, err
		}
		return sess, nil
	}

	sess.Touch(m.opts.now(), m.opts.ttl, m.opts.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return sess, errors.Join(ErrSaveSession, err)
		}
		sess.isModified = false
	}

	return sess, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (m *Manager[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes every session that has expired by now.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.opts.now())
}

// RunCleanup sweeps expired sessions every interval until ctx is done.
// It is shaped for errgroup.Group.Go and returns nil on cancellation.
func (m *Manager[Data]) RunCleanup(ctx context.Context, interval time.Duration) func() error {
	return func() error {
		if interval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := m.CleanupExpired(ctx)
				if err != nil {
					m.opts.logger.ErrorContext(ctx, "expired session sweep failed",
						logger.Component("session"), logger.Error(err))
					continue
				}
				if n > 0 {
					m.opts.logger.InfoContext(ctx, "expired sessions removed",
						logger.Component("session"), logger.Count("removed", n))
				}
			}
		}
	}
}
