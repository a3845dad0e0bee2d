package modkit

import (
	"net/http"

	"caseline/internal/modkit/httpkit"
	str "caseline/internal/platform/strings"
)

// Built is the resolved option set
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   str.MustString(c.name, "module name"),
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// PortsAs returns the injected ports as T, or the zero value when none or another type was injected
func PortsAs[T any](b Built) (T, bool) {
	p, ok := b.Ports.(T)
	return p, ok
}

// Mount registers routes under the module prefix with its middleware. An empty prefix
// mounts directly on r
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	if b.Prefix == "" {
		r.Group(func(g httpkit.Router) {
			g.Use(b.Mw...)
			register(g)
		})
		return
	}
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), b.Mw, register)
}
