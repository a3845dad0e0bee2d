// Package swaggerkit serves the API description and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "caseline/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options controls Mount
type Options struct {
	Enabled bool
	// TitleSuffix is appended to the document title, e.g. the environment name
	TitleSuffix string
	// BaseURL is the server url advertised in the document
	BaseURL string
}

// Mount serves /api/docs (UI) and /api/docs/doc.json when enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	if o.BaseURL == "" {
		o.BaseURL = "/api/v1"
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
