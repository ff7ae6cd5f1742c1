package worldbank

import (
	"io"
	"strings"
)

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// trimBody keeps upstream error bodies short and single line for logs and messages
func trimBody(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}

func messages(ms []APIMessage) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		switch {
		case m.Value != "" && m.Key != "":
			parts = append(parts, m.Key+": "+m.Value)
		case m.Value != "":
			parts = append(parts, m.Value)
		case m.Key != "":
			parts = append(parts, m.Key)
		}
	}
	if len(parts) == 0 {
		return "unspecified error"
	}
	return strings.Join(parts, "; ")
}
