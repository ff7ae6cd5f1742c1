// Package raw reads environment variables for code that runs before the
// logger exists. It must not import the logger
package raw

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment, e.g. "LOG_"
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the trimmed value or def when unset or blank
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes in any case; any other set value is false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.lookup(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer; anything else gives def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.lookup(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// GetEnum lowercases the value and returns it when allowed, else def
func (c Conf) GetEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.lookup(key))
	if slices.Contains(allowed, v) {
		return v
	}
	return def
}

// GetKV parses "k=v,k2=v2". Pairs without a key or an '=' are dropped.
// Unset gives nil
func (c Conf) GetKV(key string) map[string]string {
	v := c.lookup(key)
	if v == "" {
		return nil
	}
	out := map[string]string{}
	for _, pair := range strings.Split(v, ",") {
		k, val, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = strings.TrimSpace(val)
	}
	return out
}
