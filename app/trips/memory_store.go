package trips

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps posts in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]Post
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[uuid.UUID]Post)}
}

// List returns the owner's posts, newest first.
func (s *MemoryStore) List(_ context.Context, owner uuid.UUID) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, 0)
	for _, p := range s.posts {
		if p.UserID == owner {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Post) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

// Create stores p.
func (s *MemoryStore) Create(_ context.Context, p Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
	return nil
}

// Get returns the post id owned by owner.
func (s *MemoryStore) Get(_ context.Context, owner, id uuid.UUID) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok || p.UserID != owner {
		return Post{}, ErrPostNotFound
	}
	return p, nil
}

// Update replaces a post owned by p.Owner.
func (s *MemoryStore) Update(_ context.Context, p Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.posts[p.ID]
	if !ok || cur.UserID != p.UserID {
		return ErrPostNotFound
	}
	s.posts[p.ID] = p
	return nil
}

// Delete removes the post id owned by owner.
func (s *MemoryStore) Delete(_ context.Context, owner, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.UserID != owner {
		return ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}
