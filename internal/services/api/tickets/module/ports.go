package module

import (
	"context"

	ticketsdom "helpdesk/internal/services/api/tickets/domain"
	ticketssvc "helpdesk/internal/services/api/tickets/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptTicketsPort adapts the tickets service to the domain port interface
type adaptTicketsPort struct{ svc ticketssvc.Service }

// Submit implements the domain ServicePort interface
func (a adaptTicketsPort) Submit(ctx context.Context, clientKey string, in ticketsdom.SubmitInput) (ticketsdom.SubmitResult, error) {
	return a.svc.Submit(ctx, clientKey, in)
}

// List implements the domain ServicePort interface
func (a adaptTicketsPort) List(ctx context.Context, in ticketsdom.ListInput) ([]ticketsdom.Ticket, int, error) {
	return a.svc.List(ctx, in)
}

// UpdateStatus implements the domain ServicePort interface
func (a adaptTicketsPort) UpdateStatus(ctx context.Context, id string, in ticketsdom.UpdateStatusInput) (ticketsdom.Ticket, error) {
	return a.svc.UpdateStatus(ctx, id, in)
}

// ExportCSV implements the domain ServicePort interface
func (a adaptTicketsPort) ExportCSV(ctx context.Context, in ticketsdom.ExportInput) ([]byte, string, error) {
	return a.svc.ExportCSV(ctx, in)
}
