package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler is the platform handler type used everywhere
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the surface modules mount against. The API only reads upstream
// data, so GET and POST (the table filter body) are the only verbs
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// AdaptChi adapts a *chi.Mux to a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{root: m, r: m} }

// chiRouter wraps any chi.Router and keeps the root mux for route walking
type chiRouter struct {
	root *chi.Mux
	r    chi.Router
}

func (c chiRouter) Get(p string, h Handler)  { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Post(p string, h Handler) { c.r.Method(http.MethodPost, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{root: c.root, r: sub}) })
}

// Mux returns the wrapped router; chi routers are http.Handlers
func (c chiRouter) Mux() http.Handler { return c.r }

// Route is one mounted method and pattern
type Route struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}

// Routes lists everything mounted on the root mux behind r, sorted by pattern
// then method. Routers not built by AdaptChi report nothing
func Routes(r Router) []Route {
	c, ok := r.(chiRouter)
	if !ok || c.root == nil {
		return nil
	}
	var out []Route
	_ = chi.Walk(c.root, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		out = append(out, Route{Method: method, Pattern: route})
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Method < out[j].Method
	})
	return out
}
