package cookie

import "net/http"

// Options are the attributes of a single Set-Cookie.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option mutates Options.
type Option func(*Options)

// WithPath sets the cookie path.
func WithPath(path string) Option { return func(o *Options) { o.Path = path } }

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option { return func(o *Options) { o.Domain = domain } }

// WithMaxAge sets Max-Age in seconds. Negative values delete the cookie.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option { return func(o *Options) { o.Secure = secure } }

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option { return func(o *Options) { o.HttpOnly = httpOnly } }

// WithSameSite sets the SameSite mode.
func WithSameSite(sameSite http.SameSite) Option { return func(o *Options) { o.SameSite = sameSite } }

// applyOptions copies base so shared defaults are never mutated.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}
