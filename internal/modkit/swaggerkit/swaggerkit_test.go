package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "caseline/internal/platform/net/http"
	kit "caseline/internal/platform/testkit"
)

const fixture = `{
  "openapi": "3.1.0",
  "info": {"title": "caseline API", "version": "1.0"},
  "paths": {
    "/orders/{orderId}": {"get": {"responses": {"200": {"description": "ok"}}}},
    "/version": {"get": {"responses": {"200": {"description": "ok"}}}}
  }
}`

func TestDecorate(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(fixture), &spec); err != nil {
		t.Fatal(err)
	}
	decorate(spec, Options{TitleSuffix: "(dev)", BaseURL: "/api/v1"}, []string{"GET /orders/{orderId}"})

	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	if title := spec["info"].(map[string]any)["title"]; title != "caseline API (dev)" {
		t.Fatalf("title = %v", title)
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	comps := spec["components"].(map[string]any)
	if _, ok := comps["schemas"].(map[string]any)["ErrorResponse"]; !ok {
		t.Fatal("ErrorResponse schema missing")
	}
	if _, ok := comps["securitySchemes"].(map[string]any)["bearerAuth"]; !ok {
		t.Fatal("bearerAuth scheme missing")
	}

	paths := spec["paths"].(map[string]any)
	order := paths["/orders/{orderId}"].(map[string]any)["get"].(map[string]any)
	if _, ok := order["security"]; !ok {
		t.Fatal("secured route has no security requirement")
	}
	resps := order["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "401", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("missing %s response", code)
		}
	}
	version := paths["/version"].(map[string]any)["get"].(map[string]any)
	if _, ok := version["security"]; ok {
		t.Fatal("public route marked secured")
	}
	if _, ok := version["responses"].(map[string]any)["401"]; ok {
		t.Fatal("public route got a 401")
	}
}

func TestMount(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return fixture })

	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), Options{Enabled: true})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"url":"/api/v1"`) {
		t.Fatalf("default base url missing: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status %d", rr.Code)
	}
}

func TestMountDisabled(t *testing.T) {
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), Options{})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
}

func TestServeDocJSONBadDocument(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return "{" })
	rr := httptest.NewRecorder()
	serveDocJSON(Options{})(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
}
