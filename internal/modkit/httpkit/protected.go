package httpkit

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"caseline/internal/platform/net/middleware"
)

var (
	securedMu sync.Mutex
	secured   = map[string]struct{}{}
)

// Protected mounts fn's routes behind bearer auth and records them as secured so the
// API docs can mark them
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(middleware.Auth(p))
		fn(securedRouter{Router: g})
	})
}

// SecuredRoutes lists "METHOD /path" entries recorded by Protected, sorted
func SecuredRoutes() []string {
	securedMu.Lock()
	defer securedMu.Unlock()
	out := make([]string, 0, len(secured))
	for k := range secured {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type securedRouter struct {
	Router
	base string
}

func (s securedRouter) mark(method, path string) {
	securedMu.Lock()
	secured[method+" "+joinPath(s.base, path)] = struct{}{}
	securedMu.Unlock()
}

func joinPath(a, b string) string {
	return "/" + strings.Trim(strings.TrimSuffix(a, "/")+"/"+strings.TrimPrefix(b, "/"), "/")
}

func (s securedRouter) Get(path string, h Handler) {
	s.mark(http.MethodGet, path)
	s.Router.Get(path, h)
}

func (s securedRouter) Post(path string, h Handler) {
	s.mark(http.MethodPost, path)
	s.Router.Post(path, h)
}

func (s securedRouter) Patch(path string, h Handler) {
	s.mark(http.MethodPatch, path)
	s.Router.Patch(path, h)
}

func (s securedRouter) Delete(path string, h Handler) {
	s.mark(http.MethodDelete, path)
	s.Router.Delete(path, h)
}

func (s securedRouter) Route(prefix string, fn func(Router)) {
	s.Router.Route(prefix, func(sub Router) {
		fn(securedRouter{Router: sub, base: joinPath(s.base, prefix)})
	})
}

func (s securedRouter) Group(fn func(Router)) {
	s.Router.Group(func(sub Router) { fn(securedRouter{Router: sub, base: s.base}) })
}
