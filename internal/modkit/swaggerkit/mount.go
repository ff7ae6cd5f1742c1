// Package swaggerkit serves the OpenAPI document the modules build at runtime
// together with the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "fertilitydash/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives; the document is DocsPath + "/doc.json"
const DocsPath = "/api/docs"

// Mount serves the UI and document when enabled. Nothing is mounted otherwise
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.URL(DocsPath+"/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DomID("swagger-ui"),
	))
}
