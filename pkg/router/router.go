package router

import (
	"context"
	"net/http"

	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It may derive a new context;
// returning a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of errors.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context must already carry configs,
// logger, database, and token engine; every request context derives from it.
func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		baseCtx: ctx,
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so route groups can layer their own auth.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
	}

	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Static(pattern, dir string) {
	r.mux.Handle(pattern, http.FileServer(http.Dir(dir)))
}

// Handle registers a raw http handler wrapped with the request context. Used
// for endpoints that hijack the connection, like websocket upgrades.
func (r *Router) Handle(pattern string, h func(ctx context.Context)) {
	befores := r.befores

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithRequestState(r.baseCtx)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		h(ctx)
	})
}

func (r *Router) Handler(allowOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}
