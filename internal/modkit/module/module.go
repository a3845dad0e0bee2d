// Package module defines the contract API modules implement and how their ports are found
package module

import (
	phttp "caseline/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for other modules.
// It lives apart from modkit so a module package can export its own ports type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
