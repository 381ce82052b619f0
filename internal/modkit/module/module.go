// Package module holds the registry and port helpers shared by all modules
package module

import (
	phttp "helpdesk/internal/platform/net/http"
)

// Module mirrors the modkit contract
// kept as a sibling so port helpers do not pull module packages into modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
