package http

import "net/http"

// GetJSON mounts a JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(http.StatusOK, h))
}

// DeleteJSON mounts a JSON handler for DELETE. The result is returned with 200 so
// callers can report what was removed
func DeleteJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, JSONHandlerNoBody(http.StatusOK, h))
}

// PostJSON mounts a JSON handler for POST that answers 201
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(http.StatusCreated, h))
}

// PostQuery mounts a JSON handler for POST that answers 200, for commands that read or
// reuse state instead of creating it
func PostQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(http.StatusOK, h))
}

// PostAction mounts a bodiless POST, used for commands such as minting the next case
func PostAction(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, JSONHandlerNoBody(http.StatusCreated, h))
}

// PatchJSON mounts a JSON handler for PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, JSONHandler(http.StatusOK, h))
}
