// Package strings holds small string and slice helpers. Import it as pstrings
package strings

import std "strings"

// IfEmpty is in, or def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString is s, panicking with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns " fertility/ " into "/fertility". A blank or "/" prefix
// panics since a module may not claim the root
func MustPrefix(s string) string {
	p := std.Trim(s, " /")
	if p == "" {
		panic("root path is required")
	}
	return "/" + p
}

// Compact trims every element and drops blanks and repeats, keeping first-seen order.
// A nil input stays nil so callers can tell "not supplied" from "supplied but empty"
func Compact(in []string) []string {
	if in == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = std.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
