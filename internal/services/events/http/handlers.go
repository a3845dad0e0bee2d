// Package http provides http transport for case events
package http

import (
	stdhttp "net/http"

	"caseline/internal/modkit/httpkit"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/events/domain"
)

// Register mounts event endpoints on the given router
func Register(r httpkit.Router, rd domain.Reader) {
	h := &handlers{rd: rd}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ rd domain.Reader }

// @Summary Recent case events of an order
// @Tags Events
// @Produce json
// @Param orderId query string true "Order id"
// @Param limit query int false "Max events"
// @Success 200 {array} domain.Event "ok"
// @Router /events [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	limit, err := bind.QueryInt(r, "limit", 100, 1, 1000)
	if err != nil {
		return nil, err
	}
	return h.rd.Recent(r.Context(), org, r.URL.Query().Get("orderId"), limit)
}
