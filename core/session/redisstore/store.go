// Package redisstore persists sessions in Redis.
//
// Each session is a JSON value under "<prefix>id:<uuid>" plus a token index
// key "<prefix>token:<token>" holding the id. Both keys carry the session's
// remaining lifetime as their TTL, so Redis performs the expiry sweep itself.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/travelcraft/travelcraft/core/session"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "travelcraft:session:"

type record[Data any] struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"token"`
	UserID         uuid.UUID `json:"user_id"`
	UserEmail      string    `json:"user_email,omitempty"`
	IP             string    `json:"ip,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	Data           Data      `json:"data"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Store implements session.Store on Redis.
type Store[Data any] struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// New returns a store. An empty prefix selects DefaultPrefix.
func New[Data any](client redis.UniversalClient, prefix string) *Store[Data] {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store[Data]{client: client, prefix: prefix, now: time.Now}
}

func (s *Store[Data]) idKey(id uuid.UUID) string { return s.prefix + "id:" + id.String() }

func (s *Store[Data]) tokenKey(token string) string { return s.prefix + "token:" + token }

// GetByID returns the session stored under id.
func (s *Store[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if err != nil {
		return nil, mapErr(err)
	}

	var rec record[Data]
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(session.ErrStoreUnavailable, err)
	}
	return rec.toSession(), nil
}

// GetByToken resolves the token index, then loads the record. A token left
// behind by rotation resolves to a session whose current token differs and
// is reported as not found.
func (s *Store[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	rawID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, session.ErrNotFound
	}

	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Token != token {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// Save writes sess with a key TTL matching its expiry.
func (s *Store[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		err := s.Delete(ctx, sess.ID)
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, err := json.Marshal(fromSession(sess))
	if err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.idKey(sess.ID), raw, ttl)
		pipe.Set(ctx, s.tokenKey(sess.Token), sess.ID.String(), ttl)
		return nil
	})
	if err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the session and its token index.
func (s *Store[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.idKey(id), s.tokenKey(sess.Token)).Err(); err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired is a no-op: keys expire through their Redis TTL.
func (s *Store[Data]) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func mapErr(err error) error {
	if errors.Is(err, redis.Nil) {
		return session.ErrNotFound
	}
	return errors.Join(session.ErrStoreUnavailable, err)
}

func fromSession[Data any](sess *session.Session[Data]) record[Data] {
	return record[Data]{
		ID:             sess.ID,
		Token:          sess.Token,
		UserID:         sess.UserID,
		UserEmail:      sess.UserEmail,
		IP:             sess.IP,
		UserAgent:      sess.UserAgent,
		Data:           sess.Data,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		ExpiresAt:      sess.ExpiresAt,
	}
}

func (r record[Data]) toSession() *session.Session[Data] {
	return &session.Session[Data]{
		ID:             r.ID,
		Token:          r.Token,
		UserID:         r.UserID,
		UserEmail:      r.UserEmail,
		IP:             r.IP,
		UserAgent:      r.UserAgent,
		Data:           r.Data,
		CreatedAt:      r.CreatedAt,
		LastAccessedAt: r.LastAccessedAt,
		ExpiresAt:      r.ExpiresAt,
	}
}
