package travelcraft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/travelcraft/travelcraft/app/auth"
	"github.com/travelcraft/travelcraft/app/contact"
	"github.com/travelcraft/travelcraft/app/trips"
	"github.com/travelcraft/travelcraft/core/health"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/core/session/mongostore"
	"github.com/travelcraft/travelcraft/core/session/redisstore"
	"github.com/travelcraft/travelcraft/integration/database/mongo"
	"github.com/travelcraft/travelcraft/integration/database/redis"
)

var ErrUnknownStore = errors.New("unknown session store")

const sessionsCollection = "sessions"

// Stores holds the persistence backends. With SESSION_STORE=memory nothing
// external is dialed; with redis only sessions move out of MongoDB.
type Stores struct {
	Sessions session.Store[auth.SessionData]
	Users    auth.UserStore
	Posts    trips.Store
	Messages contact.Store
	Checks   []health.Check

	closers []func(context.Context) error
}

// MemoryStores returns in-process stores, used in development and tests.
func MemoryStores() *Stores {
	return &Stores{
		Sessions: session.NewMemoryStore[auth.SessionData](),
		Users:    auth.NewMemoryUserStore(),
		Posts:    trips.NewMemoryStore(),
		Messages: contact.NewMemoryStore(),
	}
}

// OpenStores connects the backends selected by cfg.Session.Store.
func OpenStores(ctx context.Context, cfg Config, log *slog.Logger) (*Stores, error) {
	if log == nil {
		log = logger.Discard()
	}

	switch cfg.Session.Store {
	case session.StoreMemory:
		log.WarnContext(ctx, "using in-memory stores, data is lost on restart", logger.Component("app"))
		return MemoryStores(), nil
	case session.StoreMongo, session.StoreRedis:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Session.Store)
	}

	client, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	s := &Stores{
		closers: []func(context.Context) error{client.Disconnect},
		Checks:  []health.Check{{Name: "mongo", Fn: mongo.Healthcheck(client)}},
	}

	db := client.Database(cfg.Mongo.Database)
	users := auth.NewMongoUserStore(db)
	posts := trips.NewMongoStore(db)
	s.Users, s.Posts, s.Messages = users, posts, contact.NewMongoStore(db)

	indexes := []func(context.Context) error{users.EnsureIndexes, posts.EnsureIndexes}

	if cfg.Session.Store == session.StoreRedis {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
		s.Checks = append(s.Checks, health.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
		s.Sessions = redisstore.New[auth.SessionData](rdb, "")
	} else {
		sessions := mongostore.New[auth.SessionData](db, sessionsCollection)
		indexes = append(indexes, sessions.EnsureIndexes)
		s.Sessions = sessions
	}

	for _, ensure := range indexes {
		if err := ensure(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	log.InfoContext(ctx, "stores ready", logger.Component("app"),
		slog.String("session_store", cfg.Session.Store), slog.String("database", cfg.Mongo.Database))
	return s, nil
}

// Close releases every connection, in reverse order of opening.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}
	s.closers = nil
	return errors.Join(errs...)
}
