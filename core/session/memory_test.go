package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/session"
)

func TestMemoryStore_TokenRotation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[testData]()

	sess, err := session.New[testData](session.NewSessionParams{}, epoch, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &sess))
	oldToken := sess.Token

	require.NoError(t, sess.Authenticate(uuid.New(), "a@example.com"))
	require.NoError(t, store.Save(ctx, &sess))

	_, err = store.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrNotFound, "old token must stop resolving after rotation")

	got, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[testData]()

	assert.ErrorIs(t, store.Delete(ctx, uuid.New()), session.ErrNotFound)

	sess, err := session.New[testData](session.NewSessionParams{}, epoch, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.GetByToken(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[testData]()

	sess, err := session.New[testData](session.NewSessionParams{}, epoch, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &sess))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := sess
			s.SetData(testData{Theme: string(rune('a' + i))})
			assert.NoError(t, store.Save(ctx, &s))
			_, err := store.GetByID(ctx, sess.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
