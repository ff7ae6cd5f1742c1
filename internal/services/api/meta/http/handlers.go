// Package http serves liveness, readiness and build information
package http

import (
	"context"
	"net/http"
	"time"

	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/version"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/modkit/swaggerkit"
)

// Pinger is an upstream that can be probed cheaply
type Pinger interface {
	Ping(context.Context) error
}

// Check is one readiness probe. A nil Ping reports as skipped
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Deps feed the meta routes
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	ReadyWithin time.Duration    // budget shared by all checks, default 3s
	Now         func() time.Time // default time.Now
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.ReadyWithin <= 0 {
		d.ReadyWithin = 3 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	m := meta{d}
	httpkit.Get(r, "/health", m.health)
	httpkit.Get(r, "/ready", m.ready)
	httpkit.Get(r, "/version", m.version)
	httpkit.Get(r, "/service", m.service)
	httpkit.Get(r, "/indicator", m.indicator)
}

// Docs lists the meta routes under prefix for the OpenAPI document
func Docs(prefix string) swaggerkit.SpecMutator {
	op := func(path, summary string) swaggerkit.Op {
		return swaggerkit.Op{Method: http.MethodGet, Path: prefix + path, Tag: "Meta", Summary: summary}
	}
	return swaggerkit.Operations(
		op("/health", "Liveness"),
		op("/ready", "Readiness, pinging the World Bank API"),
		op("/version", "Build information"),
		op("/service", "Service name and uptime"),
		op("/indicator", "The fixed World Bank query"),
	)
}

// Health is the liveness payload
type Health struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"fertility-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T08:05:00Z"`
}

// CheckResult is the outcome of one Check: ok, fail or skipped
type CheckResult struct {
	Name   string `json:"name"            example:"worldbank"`
	Status string `json:"status"          example:"fail"`
	Error  string `json:"error,omitempty" example:"worldbank returned 503"`
}

// Readiness is ok when every check passed, degraded otherwise
type Readiness struct {
	Status string        `json:"status" example:"degraded"`
	Checks []CheckResult `json:"checks"`
	Now    string        `json:"now"    example:"2026-10-01T08:05:00Z"`
}

// ServiceInfo reports uptime in whole seconds
type ServiceInfo struct {
	Name    string `json:"name"    example:"fertility-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// Indicator is the query every load sends upstream
type Indicator struct {
	Indicator    string   `json:"indicator"     example:"SP.DYN.TFRT.IN"`
	CountryCodes []string `json:"country_codes" example:"de,at,ch"`
	Years        string   `json:"years"         example:"1990:2021"`
	Cutoff       int      `json:"cutoff"        example:"2019"`
}

type meta struct{ d Deps }

func (m meta) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} Health
// @Router /meta/health [get]
func (m meta) health(*http.Request) (any, error) {
	return Health{OK: true, Service: m.d.ServiceName, Started: m.stamp(m.d.StartedAt), Now: m.stamp(m.d.Now())}, nil
}

// @Summary Readiness, pinging the World Bank API
// @Tags Meta
// @Produce json
// @Success 200 {object} Readiness
// @Router /meta/ready [get]
func (m meta) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), m.d.ReadyWithin)
	defer cancel()

	out := Readiness{Status: "ok", Checks: make([]CheckResult, 0, len(m.d.Checks))}
	for _, c := range m.d.Checks {
		res := CheckResult{Name: c.Name, Status: "ok"}
		if c.Ping == nil {
			res.Status = "skipped"
		} else if err := c.Ping(ctx); err != nil {
			res.Status, res.Error = "fail", err.Error()
		}
		if res.Status != "ok" {
			out.Status = "degraded"
		}
		out.Checks = append(out.Checks, res)
	}
	out.Now = m.stamp(m.d.Now())
	return out, nil
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (m meta) version(*http.Request) (any, error) {
	return version.For(m.d.ServiceName), nil
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceInfo
// @Router /meta/service [get]
func (m meta) service(*http.Request) (any, error) {
	return ServiceInfo{
		Name:    m.d.ServiceName,
		Started: m.stamp(m.d.StartedAt),
		Uptime:  int64(m.d.Now().Sub(m.d.StartedAt) / time.Second),
	}, nil
}

// @Summary The fixed World Bank query
// @Tags Meta
// @Produce json
// @Success 200 {object} Indicator
// @Router /meta/indicator [get]
func (m meta) indicator(*http.Request) (any, error) {
	q := fertility.DefaultQuery()
	return Indicator{
		Indicator:    q.Indicator,
		CountryCodes: q.CountryCodes,
		Years:        q.Years.String(),
		Cutoff:       fertility.CutoffYear,
	}, nil
}
