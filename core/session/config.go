package session

import (
	"log/slog"
	"time"
)

// Store backends selectable through Config.Store.
const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds session settings loaded from the environment.
type Config struct {
	Store           string        `env:"SESSION_STORE" envDefault:"mongo"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	TouchInterval   time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"0s"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
}

// DefaultTTL is the rolling inactivity window.
const DefaultTTL = 30 * time.Minute

// Option configures a Manager.
type Option func(*options)

type options struct {
	ttl           time.Duration
	touchInterval time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// WithTTL sets the rolling expiry window.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithTouchInterval throttles expiry updates. Zero slides expiry on every request.
func WithTouchInterval(interval time.Duration) Option {
	return func(o *options) {
		if interval >= 0 {
			o.touchInterval = interval
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the manager logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConfig applies TTL and touch interval from cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		WithTTL(cfg.TTL)(o)
		WithTouchInterval(cfg.TouchInterval)(o)
	}
}
