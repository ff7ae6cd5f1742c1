// Package module is the contract the api mounts and a boot-time registry
// that lets one module reach another's ports
package module

import (
	phttp "fertilitydash/internal/platform/net/http"
)

// Module is a named bundle of routes and ports
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Names lists module names in mount order
func Names(mods []Module) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.Name())
	}
	return out
}
