// Package mongostore persists sessions in a MongoDB collection.
//
// Documents are keyed by session id with a unique index on the token and a
// TTL index on expires_at, so MongoDB also evicts abandoned sessions between
// explicit sweeps.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/travelcraft/travelcraft/core/session"
)

// DefaultCollection is the collection used when none is given.
const DefaultCollection = "sessions"

type document[Data any] struct {
	ID             string    `bson:"_id"`
	Token          string    `bson:"token"`
	UserID         string    `bson:"user_id,omitempty"`
	UserEmail      string    `bson:"user_email,omitempty"`
	IP             string    `bson:"ip,omitempty"`
	UserAgent      string    `bson:"user_agent,omitempty"`
	Data           Data      `bson:"data"`
	CreatedAt      time.Time `bson:"created_at"`
	LastAccessedAt time.Time `bson:"last_accessed_at"`
	ExpiresAt      time.Time `bson:"expires_at"`
}

// Store implements session.Store on a MongoDB collection.
type Store[Data any] struct {
	coll *mongo.Collection
}

// New returns a store over db.collection. Call EnsureIndexes once at startup.
func New[Data any](db *mongo.Database, collection string) *Store[Data] {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store[Data]{coll: db.Collection(collection)}
}

// EnsureIndexes creates the token and expiry indexes.
func (s *Store[Data]) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByID returns the session with id.
func (s *Store[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

// GetByToken returns the session with token.
func (s *Store[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.M{"token": token})
}

// Save upserts sess by id.
func (s *Store[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	doc := toDocument(sess)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the session with id.
func (s *Store[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Join(session.ErrStoreUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteExpired removes sessions that expired before before.
func (s *Store[Data]) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": before}})
	if err != nil {
		return 0, errors.Join(session.ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

func (s *Store[Data]) findOne(ctx context.Context, filter bson.M) (*session.Session[Data], error) {
	var doc document[Data]
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(session.ErrStoreUnavailable, err)
	}
	return doc.toSession()
}

func toDocument[Data any](sess *session.Session[Data]) document[Data] {
	doc := document[Data]{
		ID:             sess.ID.String(),
		Token:          sess.Token,
		UserEmail:      sess.UserEmail,
		IP:             sess.IP,
		UserAgent:      sess.UserAgent,
		Data:           sess.Data,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		ExpiresAt:      sess.ExpiresAt,
	}
	if sess.UserID != uuid.Nil {
		doc.UserID = sess.UserID.String()
	}
	return doc
}

func (d document[Data]) toSession() (*session.Session[Data], error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Join(session.ErrStoreUnavailable, err)
	}

	userID := uuid.Nil
	if d.UserID != "" {
		if userID, err = uuid.Parse(d.UserID); err != nil {
			return nil, errors.Join(session.ErrStoreUnavailable, err)
		}
	}

	return &session.Session[Data]{
		ID:             id,
		Token:          d.Token,
		UserID:         userID,
		UserEmail:      d.UserEmail,
		IP:             d.IP,
		UserAgent:      d.UserAgent,
		Data:           d.Data,
		CreatedAt:      d.CreatedAt,
		LastAccessedAt: d.LastAccessedAt,
		ExpiresAt:      d.ExpiresAt,
	}, nil
}
