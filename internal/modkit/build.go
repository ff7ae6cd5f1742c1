package modkit

import (
	"net/http"

	"fertilitydash/internal/modkit/httpkit"
	str "fertilitydash/internal/platform/strings"
)

// Built is the result of applying options over a module's defaults
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	SwaggerOn bool
	Register  []func(httpkit.Router)
}

// Build applies defaults then opts; later options win
func Build(defaults []Option, opts ...Option) Built {
	var c buildCfg
	for _, o := range defaults {
		o(&c)
	}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		SwaggerOn: c.swaggerOn,
		Register:  append(([]func(httpkit.Router))(nil), c.register...),
	}
}

// Base implements the routing half of Module for anything that embeds it.
// routes mounts the module's own endpoints inside its prefix scope
type Base struct {
	built  Built
	routes func(httpkit.Router)
}

// NewBase pairs a Built with the module's route registration
func NewBase(b Built, routes func(httpkit.Router)) Base {
	return Base{built: b, routes: routes}
}

// MountRoutes mounts under Prefix with the module middleware applied
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		if len(b.built.Mw) > 0 {
			rr.Use(b.built.Mw...)
		}
		if b.routes != nil {
			b.routes(rr)
		}
		for _, fn := range b.built.Register {
			fn(rr)
		}
	})
}

// Name panics when the module was built without one
func (b Base) Name() string { return str.MustString(b.built.Name, "module name") }

// Prefix is the normalized mount path
func (b Base) Prefix() string { return str.MustPrefix(b.built.Prefix) }

// Middlewares returns the module scoped middleware
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.built.Mw }

// SwaggerOn reports whether the module registers its docs
func (b Base) SwaggerOn() bool { return b.built.SwaggerOn }
