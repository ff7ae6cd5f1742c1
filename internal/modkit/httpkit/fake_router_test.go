package httpkit

import (
	"net/http"

	phttp "fertilitydash/internal/platform/net/http"
)

type mounted struct {
	verb, path string
	h          phttp.Handler
}

// recRouter records what gets mounted on it instead of serving anything
type recRouter struct {
	routes   []mounted
	prefixes []string
	mw       [][]func(http.Handler) http.Handler
}

func (f *recRouter) Get(path string, h phttp.Handler) {
	f.routes = append(f.routes, mounted{"GET", path, h})
}

func (f *recRouter) Post(path string, h phttp.Handler) {
	f.routes = append(f.routes, mounted{"POST", path, h})
}

func (f *recRouter) Handle(path string, h http.Handler) {
	f.routes = append(f.routes, mounted{"*", path, h.ServeHTTP})
}

func (f *recRouter) Use(mw ...func(http.Handler) http.Handler) { f.mw = append(f.mw, mw) }

func (f *recRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *recRouter) Mux() http.Handler { return http.NotFoundHandler() }

func (f *recRouter) find(verb, path string) phttp.Handler {
	for _, m := range f.routes {
		if m.verb == verb && m.path == path {
			return m.h
		}
	}
	return nil
}
