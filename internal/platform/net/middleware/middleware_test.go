package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "caseline/internal/platform/errors"
	pnet "caseline/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

func TestStaticTokens(t *testing.T) {
	table := TokensFromTuples([][]string{{"t1", "u1", "org-a"}, {"short", "row"}, {"t2", "u2", ""}})
	if len(table) != 2 {
		t.Fatalf("table = %v", table)
	}
	cases := []struct {
		header    string
		user, org string
		code      perr.ErrorCode
	}{
		{"Bearer t1", "u1", "org-a", perr.ErrorCodeUnknown},
		{"", "", "", perr.ErrorCodeUnauthorized},
		{"Basic t1", "", "", perr.ErrorCodeUnauthorized},
		{"Bearer nope", "", "", perr.ErrorCodeUnauthorized},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		u, o, err := table.Parse(r)
		if tc.code != perr.ErrorCodeUnknown {
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("%q: err = %v", tc.header, err)
			}
			continue
		}
		if err != nil || u != tc.user || o != tc.org {
			t.Fatalf("%q: got %q %q %v", tc.header, u, o, err)
		}
	}
}

func TestAuthScopesContext(t *testing.T) {
	table := StaticTokens{{Token: "t1", UserID: "u1", OrgID: "org-a"}, {Token: "t2", UserID: "u2"}}
	var seenOrg, seenUser string
	h := Auth(table)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOrg, seenUser = pnet.OrgID(r.Context()), pnet.UserID(r.Context())
		w.WriteHeader(204)
	}))

	cases := []struct {
		token  string
		status int
	}{
		{"t1", 204},
		{"t2", 403},
		{"", 401},
	}
	for _, tc := range cases {
		seenOrg, seenUser = "", ""
		r := httptest.NewRequest("GET", "/", nil)
		if tc.token != "" {
			r.Header.Set("Authorization", "Bearer "+tc.token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != tc.status {
			t.Fatalf("token %q: status = %d (%s)", tc.token, rec.Code, rec.Body.String())
		}
		if tc.status == 204 && (seenOrg != "org-a" || seenUser != "u1") {
			t.Fatalf("context org=%q user=%q", seenOrg, seenUser)
		}
		if tc.status != 204 && seenOrg != "" {
			t.Fatalf("handler ran for rejected token %q", tc.token)
		}
	}
}

func TestAuthNilPortPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(204) })
	rec := httptest.NewRecorder()
	Auth(nil)(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 204 {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAccessLogObservesRoutePattern(t *testing.T) {
	type call struct {
		method, route string
		status        int
		elapsed       time.Duration
	}
	var got []call
	ticks := []time.Time{time.Unix(0, 0), time.Unix(0, int64(30*time.Millisecond))}
	opt := AccessLogOptions{
		Slow: 10 * time.Millisecond,
		Observe: func(m, route string, status int, d time.Duration) {
			got = append(got, call{m, route, status, d})
		},
		now: func() time.Time { t := ticks[0]; ticks = ticks[1:]; return t },
	}
	m := chi.NewRouter()
	m.Use(AccessLog(opt))
	m.Get("/orders/{orderId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(201)
		_, _ = w.Write([]byte("ok"))
	})

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/orders/o1", nil))
	if len(got) != 1 {
		t.Fatalf("observed %d calls", len(got))
	}
	want := call{"GET", "/orders/{orderId}", 201, 30 * time.Millisecond}
	if got[0] != want {
		t.Fatalf("observed %+v, want %+v", got[0], want)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RequestID()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 500 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "panic recovered" || body["request_id"] == nil || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("body = %v headers = %v", body, rec.Header())
	}
}

func TestDefaultsAndCORS(t *testing.T) {
	m := chi.NewRouter()
	m.Use(Defaults()...)
	m.Use(CORS(CORSOptions{AllowedOrigins: []string{"https://ops.example"}}))
	m.Use(Heartbeat("/healthz"))
	m.Get("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(204) })

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 {
		t.Fatalf("heartbeat status = %d", rec.Code)
	}

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://ops.example" {
		t.Fatalf("preflight headers = %v", rec.Header())
	}
}

func TestAccessLogKeepsFlusher(t *testing.T) {
	var flushed bool
	h := AccessLog(AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		f, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("access log hides http.Flusher")
		}
		_, _ = w.Write([]byte("event: x\n\n"))
		f.Flush()
		flushed = true
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/cases/watch", nil))
	if !flushed || !rec.Flushed {
		t.Fatalf("flushed = %v, recorder flushed = %v", flushed, rec.Flushed)
	}
}
