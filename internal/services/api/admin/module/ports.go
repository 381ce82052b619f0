package module

import (
	"helpdesk/internal/platform/net/middleware"
	admindom "helpdesk/internal/services/api/admin/domain"
)

// Ports exposes the session gate to other modules
// Auth is the middleware port protected route groups consume
type Ports struct {
	Service admindom.ServicePort
	Auth    middleware.AuthPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
