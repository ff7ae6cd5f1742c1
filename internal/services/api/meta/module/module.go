// Package module wires meta endpoints into the API
package module

import (
	"time"

	modkit "fertilitydash/internal/modkit"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/modkit/swaggerkit"

	metahttp "fertilitydash/internal/services/api/meta/http"
)

// ServiceName is reported by health, version and service
const ServiceName = "fertility-api"

// Module serves liveness, readiness and build info
type Module struct {
	modkit.Base
}

var _ modkit.Builder = New

// New builds the meta module. Readiness pings deps.Source when it is a Pinger
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)

	wb := metahttp.Check{Name: "worldbank"}
	if p, ok := deps.Source.(metahttp.Pinger); ok {
		wb.Ping = p.Ping
	}
	d := metahttp.Deps{ServiceName: ServiceName, StartedAt: time.Now(), Checks: []metahttp.Check{wb}}

	m := &Module{Base: modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })}
	if m.SwaggerOn() {
		swaggerkit.Register(metahttp.Docs(m.Prefix()))
	}
	return m
}

// Ports is nil; nothing depends on meta
func (m *Module) Ports() any { return nil }
