// Package http provides chi adapters, a server wrapper and the response envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "caseline/internal/platform/net"
)

// Envelope is the response body for every endpoint
type Envelope struct {
	pnet.Wire
	Page *Page `json:"page,omitempty"`
}

// Page describes a limited listing. Next is the cursor for the following page, empty on the last one
type Page struct {
	Total int64  `json:"total"`
	Limit int    `json:"limit"`
	Next  string `json:"next,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps an error into an envelope and writes it. Middleware uses this
// directly since it has no Response to return
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := pnet.Failure(err, pnet.RequestID(r.Context()))
	JSON(w, status, Envelope{Wire: wire})
}

// Response is returned by handlers instead of writing directly
type Response struct {
	Status int
	Body   any
	Page   *Page
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := pnet.Failure(err, reqID)
		JSON(w, status, Envelope{Wire: wire})
		return
	}
	if resp.Status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	wire := pnet.Reply(resp.Status, resp.Body, reqID)
	JSON(w, wire.StatusCode, Envelope{Wire: wire, Page: resp.Page})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response whose status comes from the error code
func Error(err error) Response { return Response{Body: err} }

// List returns a 200 response with a page block
func List(items any, total int64, limit int, next string) Response {
	return Response{Status: stdhttp.StatusOK, Body: items, Page: &Page{Total: total, Limit: limit, Next: next}}
}
