package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"caseline/internal/modkit/httpkit"
	"caseline/internal/services/api/docs"
)

// docReader is a seam so tests can serve a fixed document
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

func serveDocJSON(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec, o, httpkit.SecuredRoutes())

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// decorate brings the document to OAS 3.0.3 with servers, the error envelope, default
// 400 and 500 responses and bearer security on the secured routes
func decorate(spec map[string]any, o Options, securedRoutes []string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
	}
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": o.BaseURL}}
	}
	if o.TitleSuffix != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + o.TitleSuffix
			}
		}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer"},
				"error":       map[string]any{"type": "string"},
				"field":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
			"required": []any{"status_code", "status"},
		}
	}
	child(child(spec, "components"), "securitySchemes")["bearerAuth"] = map[string]any{
		"type":   "http",
		"scheme": "bearer",
	}

	secured := make(map[string]bool, len(securedRoutes))
	for _, s := range securedRoutes {
		secured[s] = true
	}
	paths, _ := spec["paths"].(map[string]any)
	for path, node := range paths {
		ops, ok := node.(map[string]any)
		if !ok {
			continue
		}
		for method, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, desc := range map[string]string{"400": "Bad Request", "500": "Internal Server Error"} {
				if _, ok := resps[code]; !ok {
					resps[code] = errorResponse(desc)
				}
			}
			if secured[strings.ToUpper(method)+" "+path] {
				op["security"] = []any{map[string]any{"bearerAuth": []any{}}}
				if _, ok := resps["401"]; !ok {
					resps["401"] = errorResponse("Unauthorized")
				}
			}
		}
	}
}

func errorResponse(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
}

// child returns m[key] as a map, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
