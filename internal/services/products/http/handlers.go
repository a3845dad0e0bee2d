// Package http provides http transport for products
package http

import (
	stdhttp "net/http"

	"caseline/internal/modkit/httpkit"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/products/domain"
	svc "caseline/internal/services/products/service"
)

// Register mounts product endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ProductInput](r, "/", h.create)
	r.Get("/", httpkit.Handle(h.list))
	httpkit.Get(r, "/{productId}", h.get)
}

type handlers struct{ svc svc.Service }

// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param payload body domain.ProductInput true "Product"
// @Success 201 {object} domain.Product "created"
// @Router /products [post]
func (h *handlers) create(r *stdhttp.Request, in domain.ProductInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Create(r.Context(), org, in)
}

// @Summary List products
// @Tags Products
// @Produce json
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Product "ok"
// @Router /products [get]
func (h *handlers) list(r *stdhttp.Request) httpkit.Response {
	org, err := httpkit.Org(r)
	if err != nil {
		return httpkit.Error(err)
	}
	limit, err := bind.QueryInt(r, "limit", 50, 1, 500)
	if err != nil {
		return httpkit.Error(err)
	}
	items, total, err := h.svc.List(r.Context(), org, limit)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(items, total, limit, "")
}

// @Summary Get a product
// @Tags Products
// @Produce json
// @Param productId path string true "Product id"
// @Success 200 {object} domain.Product "ok"
// @Router /products/{productId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), org, httpkit.Param(r, "productId"))
}
