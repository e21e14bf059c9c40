package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists sessions. Implementations must be safe for concurrent use,
// return ErrNotFound for unknown ids and tokens, and wrap backend failures
// with ErrStoreUnavailable. Save replaces the whole record (last write wins).
type Store[Data any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error)
	GetByToken(ctx context.Context, token string) (*Session[Data], error)
	Save(ctx context.Context, sess *Session[Data]) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes sessions that expired before the given time and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
