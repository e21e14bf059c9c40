package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig defines the cross-origin policy for the browser client.
type CORSConfig struct {
	// AllowOrigins lists allowed origins. Empty or "*" allows any origin,
	// in which case credentials are never advertised.
	AllowOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	// AllowCredentials lets the browser send the session cookie.
	AllowCredentials bool `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	// MaxAge caches preflight results, in seconds.
	MaxAge int `env:"CORS_MAX_AGE" envDefault:"600"`

	AllowMethods  []string `env:"-"`
	AllowHeaders  []string `env:"-"`
	ExposeHeaders []string `env:"-"`
}

// CORS is net/http middleware so it also answers preflight requests for
// routes that only register non-OPTIONS methods.
//
//	router.WithHTTPMiddleware[*router.Context](middleware.CORS(cfg))
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	origins := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		origins[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}
	wildcard := len(origins) == 0 || origins["*"]

	resolve := func(origin string) (string, bool) {
		switch {
		case origin == "":
			return "", false
		case wildcard:
			return "*", true
		case origins[origin]:
			return origin, true
		}
		return "", false
	}

	setCommon := func(h http.Header, allowed string) {
		h.Set("Access-Control-Allow-Origin", allowed)
		if cfg.AllowCredentials && allowed != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		h.Add("Vary", "Origin")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, ok := resolve(r.Header.Get("Origin"))

			requestMethod := r.Header.Get("Access-Control-Request-Method")
			if r.Method == http.MethodOptions && requestMethod != "" {
				if !ok || !slices.Contains(cfg.AllowMethods, requestMethod) {
					w.WriteHeader(http.StatusForbidden)
					return
				}

				h := w.Header()
				setCommon(h, allowed)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				if r.Header.Get("Access-Control-Request-Headers") != "" {
					h.Set("Access-Control-Allow-Headers", allowHeaders)
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if ok {
				setCommon(w.Header(), allowed)
				if exposeHeaders != "" {
					w.Header().Set("Access-Control-Expose-Headers", exposeHeaders)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
