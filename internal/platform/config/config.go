// Package config reads settings from environment variables through prefixed
// views such as CORE_API_ or WORLDBANK_
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"fertilitydash/internal/platform/logger"
)

// Conf is a view over the environment. The zero value reads unprefixed keys
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix narrows c, so New().Prefix("CORE_API_").MayInt("MAX_INFLIGHT", 8)
// reads CORE_API_MAX_INFLIGHT
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Name is the full variable name for key
func (c Conf) Name(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.Name(key))) }

// may parses key with parse. Unset gives def; unparsable logs a warning and
// gives def too
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Name(key)).Str("value", s).Interface("default", def).Msg("config: unparsable value, using default")
		return def
	}
	return v
}

// MayString is key's value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt is key as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool is key as a bool (strconv.ParseBool spelling) or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration is key as a time.Duration ("30s", "2m") or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayURL is key as an absolute URL without trailing slash, or def. A value
// that is set but not absolute panics
func (c Conf) MayURL(key, def string) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if u, err := url.Parse(s); err != nil || !u.IsAbs() {
		logger.Get().Panic().Str("key", c.Name(key)).Str("value", s).Msg("config: not an absolute URL")
	}
	return strings.TrimRight(s, "/")
}

// MayCSV splits key on commas, dropping blanks. Unset or all blank gives def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
