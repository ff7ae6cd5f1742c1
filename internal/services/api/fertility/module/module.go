// Package module wires fertility figures and tables into the API using modkit
package module

import (
	modkit "fertilitydash/internal/modkit"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/modkit/swaggerkit"
	"fertilitydash/internal/services/api/fertility/domain"
	fertilityhttp "fertilitydash/internal/services/api/fertility/http"
	fertilitysvc "fertilitydash/internal/services/api/fertility/service"
)

// Ports is the fertility port set other modules and binaries can pull out
type Ports struct {
	Service domain.ServicePort
}

// Module serves charts, the observation table and its exports
type Module struct {
	modkit.Base
	ports Ports
}

var _ modkit.Builder = New

// New builds the module; deps.Source is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if !deps.HasSource() {
		panic("fertility module requires deps.Source")
	}
	svc := fertilitysvc.New(deps.Source, deps.Figures)
	b := modkit.Build([]modkit.Option{modkit.WithName("fertility"), modkit.WithPrefix("/fertility")}, opts...)

	m := &Module{
		Base:  modkit.NewBase(b, func(r httpkit.Router) { fertilityhttp.Register(r, svc) }),
		ports: Ports{Service: svc},
	}
	if m.SwaggerOn() {
		swaggerkit.Register(fertilityhttp.Docs(m.Prefix()))
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
