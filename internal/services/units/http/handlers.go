// Package http provides http transport for unit values
package http

import (
	stdhttp "net/http"

	"caseline/internal/modkit/httpkit"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/units/domain"
	svc "caseline/internal/services/units/service"
)

// Register mounts unit endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.UnitInput](r, "/", h.record)
	r.Get("/", httpkit.Handle(h.list))
	httpkit.Get(r, "/progress", h.progress)
	httpkit.Get(r, "/{unitId}", h.get)
	r.Delete("/{unitId}", httpkit.Handle(h.delete))
}

type handlers struct{ svc svc.Service }

// @Summary Record a unit into the open case of an order and product
// @Tags Units
// @Accept json
// @Produce json
// @Param payload body domain.UnitInput true "Unit"
// @Success 201 {object} domain.Recorded "created"
// @Router /units [post]
func (h *handlers) record(r *stdhttp.Request, in domain.UnitInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Record(r.Context(), org, in)
}

// @Summary List units of an order or a case
// @Tags Units
// @Produce json
// @Param orderId query string false "Order id"
// @Param caseId query string false "Case document id"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.UnitValue "ok"
// @Router /units [get]
func (h *handlers) list(r *stdhttp.Request) httpkit.Response {
	org, err := httpkit.Org(r)
	if err != nil {
		return httpkit.Error(err)
	}
	limit, err := bind.QueryInt(r, "limit", 100, 1, 1000)
	if err != nil {
		return httpkit.Error(err)
	}
	q := r.URL.Query()
	items, total, err := h.svc.List(r.Context(), org, domain.Filter{OrderID: q.Get("orderId"), CaseID: q.Get("caseId")}, limit)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(items, total, limit, "")
}

// @Summary Get a unit
// @Tags Units
// @Produce json
// @Param unitId path string true "Unit id"
// @Success 200 {object} domain.UnitValue "ok"
// @Router /units/{unitId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), org, httpkit.Param(r, "unitId"))
}

// @Summary Remove a unit and release its count from the case
// @Tags Units
// @Param unitId path string true "Unit id"
// @Success 204 "removed"
// @Router /units/{unitId} [delete]
func (h *handlers) delete(r *stdhttp.Request) httpkit.Response {
	org, err := httpkit.Org(r)
	if err != nil {
		return httpkit.Error(err)
	}
	if err := h.svc.Delete(r.Context(), org, httpkit.Param(r, "unitId")); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.NoContent()
}

// @Summary Recorded units per order line
// @Tags Units
// @Produce json
// @Param orderId query string true "Order id"
// @Success 200 {array} domain.Progress "ok"
// @Router /units/progress [get]
func (h *handlers) progress(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Progress(r.Context(), org, r.URL.Query().Get("orderId"))
}
