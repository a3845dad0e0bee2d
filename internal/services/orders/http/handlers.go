// Package http provides http transport for orders and customers
package http

import (
	stdhttp "net/http"

	"caseline/internal/modkit/httpkit"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/orders/domain"
	svc "caseline/internal/services/orders/service"
)

// Register mounts order endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.OrderInput](r, "/", h.create)
	r.Get("/", httpkit.Handle(h.list))
	httpkit.Get(r, "/{orderId}", h.get)
	httpkit.PatchJSON[domain.StatusInput](r, "/{orderId}", h.setStatus)
}

// RegisterCustomers mounts customer endpoints on the given router
func RegisterCustomers(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Customer](r, "/", h.createCustomer)
	r.Get("/", httpkit.Handle(h.listCustomers))
}

type handlers struct{ svc svc.Service }

// @Summary Create an order, optionally with a new customer
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body domain.OrderInput true "Order"
// @Success 201 {object} domain.Order "created"
// @Router /orders [post]
func (h *handlers) create(r *stdhttp.Request, in domain.OrderInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Create(r.Context(), org, in)
}

// @Summary List orders
// @Tags Orders
// @Produce json
// @Param status query string false "Status"
// @Param customerId query string false "Customer id"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Order "ok"
// @Router /orders [get]
func (h *handlers) list(r *stdhttp.Request) httpkit.Response {
	org, err := httpkit.Org(r)
	if err != nil {
		return httpkit.Error(err)
	}
	limit, err := bind.QueryInt(r, "limit", 50, 1, 500)
	if err != nil {
		return httpkit.Error(err)
	}
	f := domain.Filter{
		Status:     domain.Status(r.URL.Query().Get("status")),
		CustomerID: r.URL.Query().Get("customerId"),
	}
	items, total, err := h.svc.List(r.Context(), org, f, limit)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(items, total, limit, "")
}

// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} domain.Order "ok"
// @Router /orders/{orderId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), org, httpkit.Param(r, "orderId"))
}

// @Summary Change order status
// @Tags Orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param payload body domain.StatusInput true "Status"
// @Success 200 {object} domain.Order "ok"
// @Router /orders/{orderId} [patch]
func (h *handlers) setStatus(r *stdhttp.Request, in domain.StatusInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SetStatus(r.Context(), org, httpkit.Param(r, "orderId"), in.Status)
}

// @Summary Create a customer
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body domain.Customer true "Customer"
// @Success 201 {object} domain.Customer "created"
// @Router /customers [post]
func (h *handlers) createCustomer(r *stdhttp.Request, in domain.Customer) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.CreateCustomer(r.Context(), org, in)
}

// @Summary List customers
// @Tags Orders
// @Produce json
// @Success 200 {array} domain.Customer "ok"
// @Router /customers [get]
func (h *handlers) listCustomers(r *stdhttp.Request) httpkit.Response {
	org, err := httpkit.Org(r)
	if err != nil {
		return httpkit.Error(err)
	}
	limit, err := bind.QueryInt(r, "limit", 50, 1, 500)
	if err != nil {
		return httpkit.Error(err)
	}
	items, total, err := h.svc.ListCustomers(r.Context(), org, limit)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(items, total, limit, "")
}
