// Package repokit provides typed repositories over the document store
package repokit

import "caseline/internal/platform/docstore"

// Binder binds a domain repo to a document store
type Binder[T any] interface {
	Bind(docstore.Store) T
}

// BindFunc lets a function act as a Binder
type BindFunc[T any] func(docstore.Store) T

// Bind calls f
func (f BindFunc[T]) Bind(db docstore.Store) T { return f(db) }

// MustBind panics on a nil store, which is always a wiring bug
func MustBind[T any](b Binder[T], db docstore.Store) T {
	if db == nil {
		panic("repokit: nil document store")
	}
	return b.Bind(db)
}
