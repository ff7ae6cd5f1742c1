package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fertilitydash/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func accessLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestAccessLog_StatusBytesAndRoute(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Logger: &l}))
	r.Get("/fertility/figures/{n}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "ab")
		_, _ = io.WriteString(w, "cd")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fertility/figures/2", nil)
	req.Header.Set("X-Request-Id", "rid-7")
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated || rr.Body.String() != "abcd" {
		t.Fatalf("response = %d %q", rr.Code, rr.Body.String())
	}
	lines := accessLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("lines = %d", len(lines))
	}
	e := lines[0]
	if e["level"] != "info" || e["status"] != float64(201) || e["bytes"] != float64(4) {
		t.Fatalf("entry = %v", e)
	}
	if e["route"] != "/fertility/figures/{n}" || e["path"] != "/fertility/figures/2" || e["request_id"] != "rid-7" {
		t.Fatalf("entry = %v", e)
	}
}

func TestAccessLog_Levels(t *testing.T) {
	cases := []struct {
		name   string
		opt    middleware.AccessLogOptions
		status int
		level  string
	}{
		{"implicit 200", middleware.AccessLogOptions{}, 0, "info"},
		{"upstream failure", middleware.AccessLogOptions{}, http.StatusBadGateway, "error"},
		{"slow", middleware.AccessLogOptions{Slow: time.Nanosecond}, http.StatusOK, "warn"},
		{"slow but failed", middleware.AccessLogOptions{Slow: time.Nanosecond}, http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := zerolog.New(&buf)
			tc.opt.Logger = &l
			h := middleware.AccessLogZerolog(tc.opt)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(10 * time.Microsecond)
				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
				_, _ = io.WriteString(w, "x")
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fertility/table.csv", nil))

			lines := accessLines(t, &buf)
			if len(lines) != 1 || lines[0]["level"] != tc.level {
				t.Fatalf("lines = %v, want level %s", lines, tc.level)
			}
		})
	}
}

func TestAccessLog_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Logger: &l, Skip: []string{"/health"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, ".") }),
	)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Body.String() != "." || buf.Len() != 0 {
		t.Fatalf("skipped path: body=%q log=%q", rr.Body.String(), buf.String())
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/deep", nil))
	if len(accessLines(t, &buf)) != 1 {
		t.Fatalf("non-skipped path not logged: %q", buf.String())
	}
}
