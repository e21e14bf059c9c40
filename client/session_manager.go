package client

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/travelcraft/travelcraft/core/logger"
)

const (
	DefaultHeartbeatInterval = 2 * time.Minute
	DefaultIdleCeiling       = 25 * time.Minute
	DefaultUnloadTimeout     = 2 * time.Second
	DefaultRequestTimeout    = 10 * time.Second
)

// State is the session manager's view of the server session.
type State int

const (
	StateUnknown State = iota
	StateActive
	StateInactive
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Activity is a kind of user interaction that resets the idle clock.
type Activity int

const (
	ActivityPointerDown Activity = iota + 1
	ActivityPointerMove
	ActivityKeyPress
	ActivityScroll
	ActivityTouchStart
	ActivityClick
)

func (a Activity) valid() bool {
	return a >= ActivityPointerDown && a <= ActivityClick
}

// LivenessAPI is the server surface the session manager polls.
type LivenessAPI interface {
	Heartbeat(ctx context.Context) (bool, error)
	CleanupSession(ctx context.Context) error
}

// SessionManager keeps the server session alive while the user is active and
// destroys it once the idle ceiling is exceeded. At most one heartbeat ticker
// exists at any time; every start or stop bumps a generation counter and
// results from an older generation are dropped.
type SessionManager struct {
	api    LivenessAPI
	clock  Clock
	logger *slog.Logger

	interval       time.Duration
	idleCeiling    time.Duration
	unloadTimeout  time.Duration
	requestTimeout time.Duration

	mu           sync.Mutex
	state        State
	mounted      bool
	hidden       bool
	destroyed    bool
	lastActivity time.Time
	gen          uint64
	ticket       *ticket
	observers    []observer
	nextObserver int
}

type observer struct {
	id int
	fn func(State)
}

type ticket struct {
	ticker Ticker
	stop   chan struct{}
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithClock overrides the time source and tickers.
func WithClock(c Clock) SessionOption {
	return func(m *SessionManager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithSessionLogger sets the logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(m *SessionManager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHeartbeatInterval sets the polling interval.
func WithHeartbeatInterval(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithIdleCeiling sets how long the user may stay idle before the session is destroyed.
func WithIdleCeiling(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.idleCeiling = d
		}
	}
}

// WithUnloadTimeout bounds the cleanup request sent by Unload.
func WithUnloadTimeout(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.unloadTimeout = d
		}
	}
}

// NewSessionManager creates an unmounted manager. Call Start to begin.
func NewSessionManager(api LivenessAPI, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		api:            api,
		clock:          SystemClock{},
		logger:         logger.Discard(),
		interval:       DefaultHeartbeatInterval,
		idleCeiling:    DefaultIdleCeiling,
		unloadTimeout:  DefaultUnloadTimeout,
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastActivity returns the time of the last accepted activity.
func (m *SessionManager) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// Subscribe registers fn for state changes caused by the server or the idle
// ceiling. Observers run in subscription order. The returned function
// removes the observer.
func (m *SessionManager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextObserver
	m.nextObserver++
	m.observers = append(m.observers, observer{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.observers = slices.DeleteFunc(m.observers, func(o observer) bool { return o.id == id })
	}
}

// Start mounts the manager and performs the initial heartbeat. A ticker left
// from an earlier Start or Activate is stopped first.
func (m *SessionManager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.mounted = true
	m.lastActivity = m.clock.Now()
	m.stopTicketLocked()
	gen := m.gen
	m.mu.Unlock()

	return m.check(ctx, gen)
}

// Close unmounts the manager. Activity is ignored and no ticker runs afterwards.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mounted = false
	m.stopTicketLocked()
}

// RecordActivity resets the idle clock. Ignored outside Start and Close.
func (m *SessionManager) RecordActivity(kind Activity) {
	if !kind.valid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mounted {
		m.lastActivity = m.clock.Now()
	}
}

// Activate begins a new authenticated period, e.g. after sign-in. It records
// activity, re-arms the destroy guard and starts polling.
func (m *SessionManager) Activate() {
	m.mu.Lock()
	m.lastActivity = m.clock.Now()
	m.destroyed = false
	changed := m.state != StateActive
	m.state = StateActive
	if m.mounted && !m.hidden {
		m.startTicketLocked()
	} else {
		m.stopTicketLocked()
	}
	m.mu.Unlock()

	if changed {
		m.logger.Debug("session activated", logger.Component("session_manager"))
	}
}

// Deactivate stops polling and marks the session inactive without notifying
// observers. Pending heartbeat results are discarded.
func (m *SessionManager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTicketLocked()
	m.state = StateInactive
}

// Hidden pauses polling while the page is not visible.
func (m *SessionManager) Hidden() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hidden = true
	m.stopTicketLocked()
}

// Visible records activity, checks the session immediately and resumes
// polling if it is still active.
func (m *SessionManager) Visible(ctx context.Context) error {
	m.mu.Lock()
	if !m.mounted {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.hidden = false
	m.lastActivity = m.clock.Now()
	gen := m.gen
	m.mu.Unlock()

	return m.check(ctx, gen)
}

// Unload sends the destroy-session request at most once and waits for it no
// longer than the unload timeout. The outcome is ignored; server-side
// expiry remains authoritative.
func (m *SessionManager) Unload() {
	if !m.claimDestroy() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.unloadTimeout)
	defer cancel()
	if err := m.api.CleanupSession(ctx); err != nil {
		m.logger.Debug("unload cleanup failed", logger.Component("session_manager"), logger.Error(err))
	}
}

func (m *SessionManager) claimDestroy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTicketLocked()
	if m.destroyed {
		return false
	}
	m.destroyed = true
	return true
}

func (m *SessionManager) check(ctx context.Context, gen uint64) error {
	ctx, cancel := context.WithTimeout(ctx, m.requestTimeout)
	defer cancel()

	ok, err := m.api.Heartbeat(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "heartbeat failed", logger.Component("session_manager"), logger.Error(err))
	}
	m.apply(gen, ok && err == nil)
	return err
}

func (m *SessionManager) apply(gen uint64, authenticated bool) {
	m.mu.Lock()
	if !m.mounted || gen != m.gen {
		m.mu.Unlock()
		return
	}

	prev := m.state
	if authenticated {
		m.state = StateActive
		if prev != StateActive {
			m.destroyed = false
		}
		if !m.hidden && m.ticket == nil {
			m.startTicketLocked()
		}
	} else {
		m.state = StateInactive
		m.stopTicketLocked()
	}
	next := m.state
	observers := m.observersLocked(prev != next)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
}

func (m *SessionManager) tick(ctx context.Context, gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != StateActive {
		m.mu.Unlock()
		return
	}

	idle := m.clock.Now().Sub(m.lastActivity)
	if idle <= m.idleCeiling {
		m.mu.Unlock()
		_ = m.check(ctx, gen)
		return
	}

	m.stopTicketLocked()
	m.state = StateInactive
	send := !m.destroyed
	m.destroyed = true
	observers := m.observersLocked(true)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "idle ceiling exceeded, destroying session",
		logger.Component("session_manager"), logger.Duration(idle))

	if send {
		cctx, cancel := context.WithTimeout(ctx, m.requestTimeout)
		if err := m.api.CleanupSession(cctx); err != nil {
			m.logger.WarnContext(ctx, "session cleanup failed", logger.Component("session_manager"), logger.Error(err))
		}
		cancel()
	}

	for _, fn := range observers {
		fn(StateInactive)
	}
}

func (m *SessionManager) startTicketLocked() {
	m.stopTicketLocked()

	t := &ticket{ticker: m.clock.NewTicker(m.interval), stop: make(chan struct{})}
	m.ticket = t
	gen := m.gen

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		for {
			select {
			case <-t.stop:
				return
			case <-t.ticker.C():
				m.tick(ctx, gen)
			}
		}
	}()
}

// stopTicketLocked stops the live ticker, if any, and invalidates in-flight
// results.
func (m *SessionManager) stopTicketLocked() {
	m.gen++
	if m.ticket == nil {
		return
	}
	m.ticket.ticker.Stop()
	close(m.ticket.stop)
	m.ticket = nil
}

func (m *SessionManager) observersLocked(changed bool) []func(State) {
	if !changed || len(m.observers) == 0 {
		return nil
	}
	out := make([]func(State), 0, len(m.observers))
	for _, o := range m.observers {
		out = append(out, o.fn)
	}
	return out
}
