// Package middleware exposes the chi and cors middleware the API uses as
// plain func(http.Handler) http.Handler values
package middleware

import (
	"net/http"
	"time"

	pstrings "fertilitydash/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID reuses an inbound X-Request-ID or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout bounds the request context; the World Bank fetch inherits it
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache marks every response uncacheable. Figures are rebuilt per call
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress compresses responses at level (see compress/flate)
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level).Handler
}

// StripSlashes serves /fertility/figures/ as /fertility/figures
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Throttle admits limit requests at once and queues four times as many for up
// to wait. Beyond that the client gets 429 with Retry-After
func Throttle(limit int, wait time.Duration) func(http.Handler) http.Handler {
	return chimw.ThrottleWithOpts(chimw.ThrottleOpts{
		Limit:          limit,
		BacklogLimit:   limit * 4,
		BacklogTimeout: wait,
		RetryAfterFn:   func(bool) time.Duration { return wait },
	})
}

// CORSOptions is the part of go-chi/cors the dashboard needs
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
)

// CORS applies o, defaulting methods to GET, POST and OPTIONS
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"Content-Disposition", "Retry-After"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
