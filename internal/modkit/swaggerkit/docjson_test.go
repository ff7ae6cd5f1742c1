package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "fertilitydash/internal/platform/net/http"
	kit "fertilitydash/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestSpec_OperationsAndDefaults(t *testing.T) {
	kit.Serial(t, "swagger")
	Reset()
	t.Cleanup(Reset)

	Register(nil)
	Register(Operations(
		Op{Method: "GET", Path: "/fertility/figures/{n}", Tag: "Fertility", Summary: "One chart"},
		Op{Method: "POST", Path: "/fertility/table", Tag: "Fertility", Summary: "Table", Body: "TableInput"},
		Op{Method: "GET", Path: "/meta/health", Tag: "Meta", Summary: "Health"},
	))

	spec := Spec()
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	paths := spec["paths"].(map[string]any)
	fig := paths["/fertility/figures/{n}"].(map[string]any)["get"].(map[string]any)
	params := fig["parameters"].([]any)
	if len(params) != 1 || params[0].(map[string]any)["name"] != "n" {
		t.Fatalf("parameters = %#v", params)
	}
	resps := fig["responses"].(map[string]any)
	for _, code := range []string{"200", "500", "502", "503"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("missing %s response", code)
		}
	}
	table := paths["/fertility/table"].(map[string]any)["post"].(map[string]any)
	if _, ok := table["requestBody"]; !ok {
		t.Fatal("expected request body on POST /fertility/table")
	}
	tags := spec["tags"].([]any)
	if len(tags) != 2 || tags[0].(map[string]any)["name"] != "Fertility" {
		t.Fatalf("tags = %#v", tags)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	errSchema, ok := schemas["ErrorResponse"].(map[string]any)
	if !ok {
		t.Fatal("missing ErrorResponse schema")
	}
	if _, ok := errSchema["properties"].(map[string]any)["field"]; !ok {
		t.Fatal("ErrorResponse lacks field")
	}
	bad := resps["502"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["example"].(map[string]any)
	if bad["code"] != 3 || bad["retryable"] != true {
		t.Fatalf("502 example = %v", bad)
	}
}

func TestSpec_TitleSuffix(t *testing.T) {
	kit.Serial(t, "swagger")
	Reset()
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(staging)")

	info := Spec()["info"].(map[string]any)
	if info["title"] != "Fertility API (staging)" {
		t.Fatalf("title = %v", info["title"])
	}
}

func TestMount_ServesDocJSON(t *testing.T) {
	kit.Serial(t, "swagger")
	Reset()
	t.Cleanup(Reset)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	servers, _ := spec["servers"].([]any)
	if len(servers) != 1 || servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", spec["servers"])
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect || rr.Header().Get("Location") != DocsPath+"/" {
		t.Fatalf("redirect = %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/index.html", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "swagger-ui") {
		t.Fatalf("ui = %d", rr.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
