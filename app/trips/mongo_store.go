package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const postsCollection = "posts"

type postDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	UserID      string    `bson:"user"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoStore keeps posts in the "posts" collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store backed by the posts collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(postsCollection)}
}

// EnsureIndexes creates the owner/recency index used by List.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// List returns the posts of owner, newest first.
func (s *MongoStore) List(ctx context.Context, owner uuid.UUID) ([]Post, error) {
	cur, err := s.coll.Find(ctx, bson.M{"user": owner.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	posts := make([]Post, 0, len(docs))
	for _, d := range docs {
		p, err := d.toPost()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Create inserts p.
func (s *MongoStore) Create(ctx context.Context, p Post) error {
	if _, err := s.coll.InsertOne(ctx, toPostDocument(p)); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the post id owned by owner.
func (s *MongoStore) Get(ctx context.Context, owner, id uuid.UUID) (Post, error) {
	var doc postDocument
	err := s.coll.FindOne(ctx, ownedBy(owner, id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, errors.Join(ErrStoreUnavailable, err)
	}
	return doc.toPost()
}

// Update replaces a post owned by p.Owner.
func (s *MongoStore) Update(ctx context.Context, p Post) error {
	res, err := s.coll.UpdateOne(ctx, ownedBy(p.UserID, p.ID), bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
	}})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post id owned by owner.
func (s *MongoStore) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, ownedBy(owner, id))
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func ownedBy(owner, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "user": owner.String()}
}

func toPostDocument(p Post) postDocument {
	return postDocument{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID.String(),
		CreatedAt:   p.CreatedAt,
	}
}

func (d postDocument) toPost() (Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Post{}, errors.Join(ErrStoreUnavailable, err)
	}
	owner, err := uuid.Parse(d.UserID)
	if err != nil {
		return Post{}, errors.Join(ErrStoreUnavailable, err)
	}
	return Post{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		UserID:      owner,
		CreatedAt:   d.CreatedAt,
	}, nil
}
