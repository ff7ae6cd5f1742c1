package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"fertilitydash/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack from main
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration // per request, default 60s
	Slow    time.Duration // access log warn threshold, default 2s
}

// Throttle caps concurrent requests through a scope; limit <= 0 is no cap.
// Excess requests wait up to wait (default 30s) for a slot, then get a 429
func Throttle(limit int, wait time.Duration) []func(http.Handler) http.Handler {
	if limit <= 0 {
		return nil
	}
	if wait <= 0 {
		wait = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{middleware.Throttle(limit, wait)}
}

// CommonStack returns the baseline API middleware slice with defaults
func CommonStack() []func(http.Handler) http.Handler {
	return Stack(StackOptions{})
}

// Stack returns the baseline API middleware slice
// the timeout covers figure assembly, which makes four upstream fetches
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Skip: []string{"/health"}}),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
