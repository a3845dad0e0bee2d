// Package http provides http transport for cases
package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"

	"caseline/internal/modkit/httpkit"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	phttp "caseline/internal/platform/net/http"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/cases/domain"
	svc "caseline/internal/services/cases/service"
)

// Register mounts case endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Get("/", httpkit.Handle(h.list))
	r.Get("/watch", h.watch)
	httpkit.PostJSON[domain.PairInput](r, "/next", h.next)
	httpkit.PostQuery[domain.PairInput](r, "/open", h.open)
	httpkit.PostQuery[domain.PairInput](r, "/sweep", h.sweep)
	httpkit.PostQuery[domain.PreviewInput](r, "/preview", h.preview)
	httpkit.Get(r, "/{caseId}", h.get)
}

type handlers struct{ svc svc.Service }

func views(cs []domain.Case) []domain.View {
	out := make([]domain.View, 0, len(cs))
	for _, c := range cs {
		out = append(out, domain.ViewOf(c))
	}
	return out
}

// @Summary List the cases of an order and product, newest first
// @Tags Cases
// @Produce json
// @Param orderId query string true "Order id"
// @Param productId query string true "Product id"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.View "ok"
// @Router /cases [get]
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
	items, err := h.svc.List(r.Context(), org, q.Get("orderId"), q.Get("productId"), limit)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(views(items), int64(len(items)), limit, "")
}

// @Summary Get a case
// @Tags Cases
// @Produce json
// @Param caseId path string true "Case document id"
// @Success 200 {object} domain.View "ok"
// @Router /cases/{caseId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.Get(r.Context(), org, httpkit.Param(r, "caseId"))
	if err != nil {
		return nil, err
	}
	return domain.ViewOf(c), nil
}

// @Summary Mint the next case of an order and product
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.PairInput true "Pair"
// @Success 201 {object} domain.View "created"
// @Router /cases/next [post]
func (h *handlers) next(r *stdhttp.Request, in domain.PairInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.MintNext(r.Context(), org, in.OrderID, in.ProductID)
	if err != nil {
		return nil, err
	}
	return domain.ViewOf(c), nil
}

// @Summary Return the open case of an order and product, minting one if needed
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.PairInput true "Pair"
// @Success 200 {object} domain.View "ok"
// @Router /cases/open [post]
func (h *handlers) open(r *stdhttp.Request, in domain.PairInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.EnsureOpenCase(r.Context(), org, in.OrderID, in.ProductID)
	if err != nil {
		return nil, err
	}
	return domain.ViewOf(c), nil
}

// @Summary Destroy the empty cases of an order and product except the newest
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.PairInput true "Pair"
// @Success 200 {object} domain.SweepResult "ok"
// @Router /cases/sweep [post]
func (h *handlers) sweep(r *stdhttp.Request, in domain.PairInput) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	n, err := h.svc.SweepPair(r.Context(), org, in.OrderID, in.ProductID)
	if err != nil {
		return nil, err
	}
	return domain.SweepResult{Destroyed: n}, nil
}

// @Summary Preview the identifiers a pattern mints
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.PreviewInput true "Pattern"
// @Success 200 {object} domain.Preview "ok"
// @Router /cases/preview [post]
func (h *handlers) preview(_ *stdhttp.Request, in domain.PreviewInput) (any, error) {
	return h.svc.Preview(in), nil
}

// @Summary Stream the cases of an order and product as server sent events
// @Tags Cases
// @Produce text/event-stream
// @Param orderId query string true "Order id"
// @Param productId query string true "Product id"
// @Success 200 {array} domain.View "one event per snapshot"
// @Router /cases/watch [get]
func (h *handlers) watch(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	org, err := httpkit.Org(r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	flusher, ok := w.(stdhttp.Flusher)
	if !ok {
		phttp.RespondError(w, r, perr.Unavailablef("streaming unsupported"))
		return
	}
	q := r.URL.Query()
	snaps, err := h.svc.Watch(r.Context(), org, q.Get("orderId"), q.Get("productId"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(stdhttp.StatusOK)
	flusher.Flush()

	for snap := range snaps {
		if snap.Err != nil {
			logger.C(r.Context()).Warn().Err(snap.Err).Msg("case watch ended")
			_, _ = fmt.Fprintf(w, "event: error\ndata: %q\n\n", snap.Err.Error())
			flusher.Flush()
			return
		}
		data, err := json.Marshal(views(snap.Items))
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "event: cases\ndata: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}
