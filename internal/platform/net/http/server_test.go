package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	phttp "fertilitydash/internal/platform/net/http"
)

func run(t *testing.T, ctx context.Context, srv *phttp.Server) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	return done
}

func waitRun(t *testing.T, done <-chan error, within time.Duration) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(within):
		t.Fatal("Run did not return")
	}
}

func TestServer_RoutesMountedAfterConstruction(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	r := srv.Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Source", "worldbank")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/fertility", func(f phttp.Router) {
		f.Get("/countries", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "Germany") })
		f.Post("/table", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})

	done := run(t, context.Background(), srv)

	cases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/fertility/countries", http.StatusOK, "Germany"},
		{http.MethodPost, "/fertility/table", http.StatusAccepted, ""},
		{http.MethodGet, "/fertility/nope", http.StatusNotFound, ""},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.status || rec.Header().Get("X-Source") != "worldbank" {
			t.Fatalf("%s %s = %d headers=%v", c.method, c.path, rec.Code, rec.Header())
		}
		if c.body != "" && rec.Body.String() != c.body {
			t.Fatalf("%s body = %q", c.path, rec.Body.String())
		}
	}
	if got := phttp.Routes(r); len(got) != 2 {
		t.Fatalf("routes = %v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown = %v", err)
	}
	waitRun(t, done, 2*time.Second)
}

func TestNewServer_Addr(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("NOPE_")).Addr(); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}
	t.Setenv("CORE_API_API_PORT", ":12345")
	if got := phttp.NewServer(config.New().Prefix("CORE_API_")).Addr(); got != ":12345" {
		t.Fatalf("prefixed addr = %q", got)
	}
}

func TestServer_ListenErrorIsUnavailable(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:abc")
	err := phttp.NewServer(config.New()).Run(context.Background())
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("Run = %v, want an unavailable listen error", err)
	}
}

func TestServer_CancelDrains(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	t.Setenv("SHUTDOWN_GRACE", "1s")
	srv := phttp.NewServer(config.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := run(t, ctx, srv)
	cancel()
	waitRun(t, done, 3*time.Second)
}
