package api

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"caseline/internal/modkit"
	"caseline/internal/platform/config"
	"caseline/internal/platform/docstore"
	"caseline/internal/platform/metrics"
	phttp "caseline/internal/platform/net/http"
	kit "caseline/internal/platform/testkit"
)

type env struct {
	mux *chi.Mux
	app *App
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv("CORE_API_TOKENS", "tok1:u1:org1,tok2:u2:org2")
	db := docstore.NewMemory()
	t.Cleanup(func() { _ = db.Close() })

	mux := chi.NewRouter()
	app := Mount(context.Background(), phttp.AdaptChi(mux), Options{
		Config: config.New().Prefix("CORE_API_"),
		Deps: modkit.Deps{
			Cfg:     config.New(),
			Docs:    db,
			Metrics: metrics.New(),
			Clock:   kit.Clock(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)),
		},
		EnableSwagger: true,
	})
	return env{mux: mux, app: app}
}

func (e env) do(t *testing.T, token, method, path, body string) (int, json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr.Code, out.Data
}

func id(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &v); err != nil || v.ID == "" {
		t.Fatalf("no id in %s", raw)
	}
	return v.ID
}

func TestPackingFlow(t *testing.T) {
	e := newEnv(t)

	code, raw := e.do(t, "tok1", "POST", "/api/v1/products", `{
		"name": "Widget",
		"caseIdentifierSchema": {"name": "case", "pattern": "YYYYMMDD-###", "maxSize": 2, "autoGen": true},
		"unitIdentifierSchema": [{"name": "serial", "unique": true, "transform": "UPPERCASE"}]
	}`)
	if code != stdhttp.StatusCreated {
		t.Fatalf("product = %d %s", code, raw)
	}
	product := id(t, raw)

	code, raw = e.do(t, "tok1", "POST", "/api/v1/orders",
		`{"customer":{"name":"Acme"},"orderItems":[{"productId":"`+product+`","quantity":4}]}`)
	if code != stdhttp.StatusCreated {
		t.Fatalf("order = %d %s", code, raw)
	}
	order := id(t, raw)

	for _, sn := range []string{"a1", "a2", "a3"} {
		code, raw = e.do(t, "tok1", "POST", "/api/v1/units",
			`{"orderId":"`+order+`","productId":"`+product+`","ids":{"serial":"`+sn+`"}}`)
		if code != stdhttp.StatusCreated {
			t.Fatalf("unit %s = %d %s", sn, code, raw)
		}
	}
	kit.MustContain(t, string(raw), `"caseId":"20240115-002"`)

	code, raw = e.do(t, "tok1", "GET", "/api/v1/cases?orderId="+order+"&productId="+product, "")
	if code != stdhttp.StatusOK {
		t.Fatalf("cases = %d %s", code, raw)
	}
	kit.MustContain(t, string(raw), `"caseId":"20240115-001"`)
	kit.MustContain(t, string(raw), `"state":"full"`)

	code, raw = e.do(t, "tok1", "GET", "/api/v1/units/progress?orderId="+order, "")
	if code != stdhttp.StatusOK {
		t.Fatalf("progress = %d %s", code, raw)
	}
	kit.MustContain(t, string(raw), `"recorded":3`)

	// tenants do not see each other
	if code, _ := e.do(t, "tok2", "GET", "/api/v1/orders/"+order, ""); code != stdhttp.StatusNotFound {
		t.Fatalf("other tenant = %d", code)
	}
}

func TestAuthAndPublicRoutes(t *testing.T) {
	e := newEnv(t)
	if code, _ := e.do(t, "", "GET", "/api/v1/products", ""); code != stdhttp.StatusUnauthorized {
		t.Fatalf("no token = %d", code)
	}
	if code, _ := e.do(t, "nope", "GET", "/api/v1/products", ""); code != stdhttp.StatusUnauthorized {
		t.Fatalf("bad token = %d", code)
	}
	if code, raw := e.do(t, "", "GET", "/api/v1/version", ""); code != stdhttp.StatusOK || !strings.Contains(string(raw), ServiceName) {
		t.Fatalf("version = %d %s", code, raw)
	}
	if code, _ := e.do(t, "", "GET", "/api/v1/healthz", ""); code != stdhttp.StatusOK {
		t.Fatalf("healthz = %d", code)
	}

	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("metrics = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), "caseline_http_request_duration_seconds")

	rr = httptest.NewRecorder()
	e.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("doc.json = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"bearerAuth"`)
}

func TestAssembleRegistersModules(t *testing.T) {
	e := newEnv(t)
	got := strings.Join(e.app.Modules.Registry.Names(), ",")
	if got != "products,orders,events,cases,units,meta" {
		t.Fatalf("modules = %s", got)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.app.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}
