package client_test

import (
	"context"
	"sync"
	"time"

	"github.com/travelcraft/travelcraft/client"
)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTicker(time.Duration) client.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick fires every live ticker once.
func (c *fakeClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tickers {
		if t.live() {
			select {
			case t.ch <- c.now:
			default:
			}
		}
	}
}

// Live counts tickers that have not been stopped.
func (c *fakeClock) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if t.live() {
			n++
		}
	}
	return n
}

type fakeTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

type fakeLiveness struct {
	mu            sync.Mutex
	authenticated bool
	err           error
	gate          chan struct{}
	heartbeats    int
	cleanups      int
}

func (f *fakeLiveness) Heartbeat(ctx context.Context) (bool, error) {
	f.mu.Lock()
	f.heartbeats++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated, f.err
}

func (f *fakeLiveness) CleanupSession(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanups++
	f.authenticated = false
	return nil
}

func (f *fakeLiveness) set(authenticated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = authenticated
}

func (f *fakeLiveness) counts() (heartbeats, cleanups int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heartbeats, f.cleanups
}
