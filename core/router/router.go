package router

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/travelcraft/travelcraft/core/handler"
	"github.com/travelcraft/travelcraft/core/response"
)

// Router registers typed handlers on a chi.Router.
type Router[C handler.Context] struct {
	mux          chi.Router
	newContext   func(http.ResponseWriter, *http.Request) C
	errorHandler handler.ErrorHandler[C]
	middlewares  []handler.Middleware[C]
}

// Option configures a Router.
type Option[C handler.Context] func(*Router[C])

// WithErrorHandler sets the handler used to render errors returned by
// responses. Defaults to response.JSONErrorHandler.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(r *Router[C]) {
		if h != nil {
			r.errorHandler = h
		}
	}
}

// WithHTTPMiddleware installs plain net/http middleware on the chi mux,
// for example chi's RequestID or Recoverer.
func WithHTTPMiddleware[C handler.Context](mws ...func(http.Handler) http.Handler) Option[C] {
	return func(r *Router[C]) {
		r.mux.Use(mws...)
	}
}

// New creates a Router backed by a fresh chi mux.
func New[C handler.Context](newContext func(http.ResponseWriter, *http.Request) C, opts ...Option[C]) *Router[C] {
	if newContext == nil {
		panic("router: context factory is required")
	}

	r := &Router[C]{
		mux:          chi.NewRouter(),
		newContext:   newContext,
		errorHandler: response.JSONErrorHandler[C],
	}
	for _, opt := range opts {
		opt(r)
	}

	r.mux.NotFound(r.wrap(func(C) handler.Response {
		return response.Error(response.ErrNotFound)
	}))
	r.mux.MethodNotAllowed(r.wrap(func(C) handler.Response {
		return response.Error(response.ErrMethodNotAllowed)
	}))

	return r
}

// Use appends typed middleware for routes registered afterwards.
func (r *Router[C]) Use(mws ...handler.Middleware[C]) {
	r.middlewares = append(r.middlewares, mws...)
}

// With returns a router sharing the mux with extra middleware appended.
func (r *Router[C]) With(mws ...handler.Middleware[C]) *Router[C] {
	return r.derive(r.mux, mws...)
}

// Route mounts a sub-router under pattern.
func (r *Router[C]) Route(pattern string, fn func(r *Router[C])) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(r.derive(sub))
	})
}

// Group registers routes sharing middleware without a path prefix.
func (r *Router[C]) Group(fn func(r *Router[C])) {
	fn(r.derive(r.mux))
}

// Get registers h for GET pattern.
func (r *Router[C]) Get(pattern string, h handler.HandlerFunc[C])    { r.Handle(http.MethodGet, pattern, h) }
// Post registers h for POST pattern.
func (r *Router[C]) Post(pattern string, h handler.HandlerFunc[C])   { r.Handle(http.MethodPost, pattern, h) }
// Put registers h for PUT pattern.
func (r *Router[C]) Put(pattern string, h handler.HandlerFunc[C])    { r.Handle(http.MethodPut, pattern, h) }
// Delete registers h for DELETE pattern.
func (r *Router[C]) Delete(pattern string, h handler.HandlerFunc[C]) { r.Handle(http.MethodDelete, pattern, h) }

// Handle registers h for method and pattern.
func (r *Router[C]) Handle(method, pattern string, h handler.HandlerFunc[C]) {
	r.mux.Method(method, pattern, r.wrap(handler.Chain(h, r.middlewares...)))
}

// Mount attaches a plain http.Handler under pattern.
func (r *Router[C]) Mount(pattern string, h http.Handler) {
	r.mux.Mount(pattern, h)
}

// ServeHTTP dispatches to the underlying chi mux.
func (r *Router[C]) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router[C]) derive(mux chi.Router, mws ...handler.Middleware[C]) *Router[C] {
	return &Router[C]{
		mux:          mux,
		newContext:   r.newContext,
		errorHandler: r.errorHandler,
		middlewares:  append(slices.Clone(r.middlewares), mws...),
	}
}

func (r *Router[C]) wrap(h handler.HandlerFunc[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ww := &responseWriter{ResponseWriter: w}
		ctx := r.newContext(ww, req)

		resp := h(ctx)
		if resp == nil {
			return
		}
		if err := resp(ww, ctx.Request()); err != nil && !ww.written {
			r.errorHandler(ctx, err)
		}
	}
}
