package travelcraft

import (
	"time"

	"github.com/travelcraft/travelcraft/app/auth"
	"github.com/travelcraft/travelcraft/core/cookie"
	"github.com/travelcraft/travelcraft/core/email"
	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/core/server"
	"github.com/travelcraft/travelcraft/core/session"
	"github.com/travelcraft/travelcraft/core/sessiontransport"
	"github.com/travelcraft/travelcraft/integration/database/mongo"
	"github.com/travelcraft/travelcraft/integration/database/redis"
	"github.com/travelcraft/travelcraft/integration/email/postmark"
	"github.com/travelcraft/travelcraft/middleware"
	"github.com/travelcraft/travelcraft/pkg/chat"
	"github.com/travelcraft/travelcraft/pkg/ratelimiter"
)

// Config aggregates every component's environment settings.
type Config struct {
	Logger        logger.Config
	Server        server.Config
	Mongo         mongo.Config
	Redis         redis.Config
	Cookie        cookie.Config
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	CORS          middleware.CORSConfig
	Auth          auth.Config
	Chat          chat.Config
	Email         email.Config
	Postmark      postmark.Config
	RateLimit     ratelimiter.Config

	Env              string        `env:"APP_ENV" envDefault:"development"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
}
