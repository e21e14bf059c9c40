package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// MongoUserStore keeps users in the "users" collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore returns a user store backed by the users collection.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Create inserts u, returning ErrUserExists on a duplicate email.
func (s *MongoUserStore) Create(ctx context.Context, u User) error {
	_, err := s.coll.InsertOne(ctx, userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return ErrUserExists
	default:
		return errors.Join(ErrStoreUnavailable, err)
	}
}

// GetByID returns the user with id.
func (s *MongoUserStore) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

// GetByEmail returns the user registered with email.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrUserNotFound
		}
		return User{}, errors.Join(ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return User{}, errors.Join(ErrStoreUnavailable, err)
	}
	return User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
