// Package httpkit gives modules the routing and response helpers they need without
// importing the platform http package directly
package httpkit

import (
	"net/http"

	phttp "caseline/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Response is a return-style handler result
	Response = phttp.Response
	// Page is the listing block of a response
	Page = phttp.Page
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps an error to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with a page block
func List(items any, total int64, limit int, next string) Response {
	return phttp.List(items, total, limit, next)
}

// Handle adapts a Response-returning handler
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
