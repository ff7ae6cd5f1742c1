package swaggerkit

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"fertilitydash/internal/core/version"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
)

// SpecMutator lets modules tweak the spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// Register adds a spec mutator for swagger JSON
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Reset clears registered mutators for tests
func Reset() {
	mu.Lock()
	mutators = nil
	mu.Unlock()
}

// Op documents one route relative to httpkit.V1
type Op struct {
	Method   string
	Path     string
	Tag      string
	Summary  string
	Body     string // schema name of the JSON request body, empty for none
	Produces []string
}

// Operations returns a mutator that adds ops to the spec paths
func Operations(ops ...Op) SpecMutator {
	return func(spec map[string]any) {
		paths := child(spec, "paths")
		for _, op := range ops {
			child(paths, op.Path)[strings.ToLower(op.Method)] = operation(op)
		}
	}
}

func operation(op Op) map[string]any {
	produces := op.Produces
	if len(produces) == 0 {
		produces = []string{"application/json"}
	}
	content := map[string]any{}
	for _, ct := range produces {
		content[ct] = map[string]any{}
	}
	out := map[string]any{
		"summary": op.Summary,
		"tags":    []any{op.Tag},
		"responses": map[string]any{
			"200": map[string]any{"description": "OK", "content": content},
		},
	}
	if params := pathParams(op.Path); len(params) > 0 {
		out["parameters"] = params
	}
	if op.Body != "" {
		out["requestBody"] = map[string]any{
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"type": "object", "title": op.Body},
				},
			},
		}
	}
	return out
}

// pathParams turns {name} segments into required path parameters
func pathParams(path string) []any {
	var out []any
	for _, seg := range strings.Split(path, "/") {
		if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			out = append(out, map[string]any{
				"name":     seg[1 : len(seg)-1],
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	return out
}

// Spec builds the served document
func Spec() map[string]any {
	b := version.Info()
	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Fertility API",
			"description": "Total fertility rate charts and tables",
			"version":     b.Version,
		},
		"paths": map[string]any{},
	}

	// OAS3 base url lives in servers
	ensureServers(spec, httpkit.V1)

	cfg := config.New().Prefix("CORE_API_")
	if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			info["title"] = info["title"].(string) + " " + v
		}
	}

	mu.RLock()
	ms := append([]SpecMutator(nil), mutators...)
	mu.RUnlock()
	for _, m := range ms {
		m(spec)
	}

	addErrorResponses(spec)
	listTags(spec)
	return spec
}

// serveDocJSON serves the spec with module mutations applied
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Spec())
	}
}

func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{
			map[string]any{"url": url},
		}
	}
}

// errorExamples are documented on every operation unless it says otherwise
var errorExamples = []struct {
	code perr.ErrorCode
	msg  string
}{
	{perr.ErrorCodePanic, "internal error"},
	{perr.ErrorCodeUpstream, "worldbank unexpected status 503"},
	{perr.ErrorCodeUnavailable, "worldbank unreachable"},
}

func errorSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"retryable":   prop("boolean"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status", "code", "error"},
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// eachOp calls fn for every operation object under paths
func eachOp(spec map[string]any, fn func(op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for _, node := range paths {
		methods, _ := node.(map[string]any)
		for _, op := range methods {
			if m, ok := op.(map[string]any); ok {
				fn(m)
			}
		}
	}
}

func addErrorResponses(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	ref := map[string]any{"$ref": "#/components/schemas/ErrorResponse"}
	eachOp(spec, func(op map[string]any) {
		responses := child(op, "responses")
		for _, ex := range errorExamples {
			status := ex.code.HTTPStatus()
			key := strconv.Itoa(status)
			if _, ok := responses[key]; ok {
				continue
			}
			responses[key] = map[string]any{
				"description": http.StatusText(status),
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": ref,
						"example": map[string]any{
							"status_code": status,
							"status":      http.StatusText(status),
							"code":        int(ex.code),
							"error":       ex.msg,
							"retryable":   ex.code.Retryable(),
						},
					},
				},
			}
		}
	})
}

// listTags lists every used tag once, alphabetically
func listTags(spec map[string]any) {
	var names []string
	eachOp(spec, func(op map[string]any) {
		tags, _ := op["tags"].([]any)
		for _, t := range tags {
			if s, _ := t.(string); s != "" && !slices.Contains(names, s) {
				names = append(names, s)
			}
		}
	})
	slices.Sort(names)
	out := make([]any, 0, len(names))
	for _, s := range names {
		out = append(out, map[string]any{"name": s})
	}
	spec["tags"] = out
}
