package modkit

import (
	phttp "helpdesk/internal/platform/net/http"
)

// Module is the surface an API module presents to the composition root
// kept tiny so modules only couple through ports
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)

	// Ports returns a module specific port bundle for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}
