package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.New(ratelimiter.Config{Capacity: 1})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestAllow(t *testing.T) {
	t.Parallel()

	clk := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l, err := ratelimiter.New(ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: 10 * time.Second},
		ratelimiter.WithClock(clk.Now))
	require.NoError(t, err)

	for i := range 3 {
		res, err := l.Allow(t.Context(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Allow(t.Context(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 10*time.Second, res.RetryAfter)

	other, err := l.Allow(t.Context(), "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	clk.Advance(10 * time.Second)
	res, err = l.Allow(t.Context(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	clk.Advance(time.Hour)
	res, err = l.Allow(t.Context(), "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	l.Reset("1.2.3.4")
	assert.Equal(t, 1, l.Len())

	clk.Advance(2 * time.Hour)
	assert.Equal(t, 1, l.RemoveStale(time.Hour))
	assert.Zero(t, l.Len())
}

func TestAllowCanceled(t *testing.T) {
	t.Parallel()

	l, err := ratelimiter.New(ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = l.Allow(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentAllow(t *testing.T) {
	t.Parallel()

	l, err := ratelimiter.New(ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	var allowed sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for range 100 {
		allowed.Add(1)
		go func() {
			defer allowed.Done()
			res, err := l.Allow(context.Background(), "shared")
			if err == nil && res.Allowed {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	allowed.Wait()
	assert.Equal(t, 50, granted)
}
