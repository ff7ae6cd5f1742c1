package http

import (
	"net"
	stdhttp "net/http"

	"fertilitydash/internal/platform/logger"

	mw "github.com/go-chi/chi/v5/middleware"
)

// ProfilerOptions controls the pprof endpoints
type ProfilerOptions struct {
	Enabled bool
	Prefix  string // default /debug
	// AllowRemote serves non-loopback callers too; otherwise they get a 404
	AllowRemote bool
}

// MountProfiler mounts chi's pprof handlers under opt.Prefix
func MountProfiler(r Router, opt ProfilerOptions) {
	if !opt.Enabled {
		return
	}
	prefix := opt.Prefix
	if prefix == "" {
		prefix = "/debug"
	}
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	serve := func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		if !opt.AllowRemote && !loopback(req.RemoteAddr) {
			stdhttp.NotFound(w, req)
			return
		}
		h.ServeHTTP(w, req)
	}
	r.Get(prefix, serve)
	r.Get(prefix+"/*", serve)

	logger.Named("http").Warn().
		Str("prefix", prefix).
		Bool("remote", opt.AllowRemote).
		Msg("pprof mounted")
}

func loopback(remote string) bool {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
