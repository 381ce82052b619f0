package module

import (
	queuedom "helpdesk/internal/services/api/queue/domain"
	ticketsdom "helpdesk/internal/services/api/tickets/domain"
)

// Ports exposes the projector to other modules
// Refresher satisfies the narrow port the submission flow consumes
type Ports struct {
	Projector queuedom.ServicePort
	Refresher ticketsdom.QueuePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
