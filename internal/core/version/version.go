// Package version provides information about the build version of the binaries.
package version

import "runtime"

// BuildInfo holds version information about a build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns the build information for the API. The version, commit, and date
// variables are set at build time using -ldflags:
//
//	-X 'fertilitydash/internal/core/version.version=v0.1.0'
//	-X 'fertilitydash/internal/core/version.commit=abcd'
//	-X 'fertilitydash/internal/core/version.date=2026-10-01'
func Info() BuildInfo { return For("fertility-api") }

// For returns the build information labelled with service
func For(service string) BuildInfo {
	return BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
