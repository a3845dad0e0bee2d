package httpkit

import (
	"net/http"

	phttp "caseline/internal/platform/net/http"
)

// Get mounts a bodiless JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Delete mounts a bodiless JSON handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { phttp.DeleteJSON(r, path, h) }

// Action mounts a bodiless POST answering 201
func Action(r Router, path string, h func(*http.Request) (any, error)) { phttp.PostAction(r, path, h) }

// PostJSON mounts a JSON body handler under POST answering 201
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PostQuery mounts a JSON body handler under POST answering 200
func PostQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostQuery(r, path, h)
}

// PatchJSON mounts a JSON body handler under PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PatchJSON(r, path, h)
}
