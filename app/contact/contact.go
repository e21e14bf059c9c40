package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var ErrStoreUnavailable = errors.New("contact store unavailable")

// Message is a visitor's contact form submission.
type Message struct {
	ID        uuid.UUID `json:"id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Store persists contact messages.
type Store interface {
	Save(ctx context.Context, m Message) error
}

// MemoryStore keeps contact messages in memory.
type MemoryStore struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends m.
func (s *MemoryStore) Save(_ context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}

// Messages returns a copy of everything saved so far.
func (s *MemoryStore) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

type mongoMessage struct {
	ID      string `bson:"_id"`
	Message `bson:",inline"`
}

// MongoStore keeps messages in the "contactmessages" collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store backed by the contact messages collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("contactmessages")}
}

// Save inserts m.
func (s *MongoStore) Save(ctx context.Context, m Message) error {
	if _, err := s.coll.InsertOne(ctx, mongoMessage{ID: m.ID.String(), Message: m}); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
