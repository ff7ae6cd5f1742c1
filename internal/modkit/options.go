package modkit

import (
	"net/http"

	"fertilitydash/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*buildCfg)

type buildCfg struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	swaggerOn bool
	register  []func(httpkit.Router)
}

// WithName sets the name used in logs and the port registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares appends middleware scoped to the module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithSwagger makes the module contribute its operations to the api docs
func WithSwagger(enabled bool) Option {
	return func(c *buildCfg) { c.swaggerOn = enabled }
}

// WithRegister mounts extra routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) {
		if fn != nil {
			c.register = append(c.register, fn)
		}
	}
}
