package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound     = errors.New("post not found or not owned by user")
	ErrMissingFields    = errors.New("title and description are required")
	ErrStoreUnavailable = errors.New("post store unavailable")
)

// Post is a saved trip belonging to one user.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store persists posts. Every lookup is scoped to the owner; a post owned by
// someone else is reported as ErrPostNotFound.
type Store interface {
	List(ctx context.Context, owner uuid.UUID) ([]Post, error)
	Create(ctx context.Context, p Post) error
	Get(ctx context.Context, owner, id uuid.UUID) (Post, error)
	Update(ctx context.Context, p Post) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}
