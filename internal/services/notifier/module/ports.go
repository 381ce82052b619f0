package module

import (
	dom "helpdesk/internal/services/notifier/domain"
)

// Ports exposes the notifier worker port
type Ports struct {
	Worker dom.WorkerPort
}
