package module

import (
	"context"

	knowledgedom "helpdesk/internal/services/api/knowledge/domain"
	knowledgesvc "helpdesk/internal/services/api/knowledge/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptKnowledgePort adapts the knowledge service to the domain port interface
type adaptKnowledgePort struct{ svc knowledgesvc.Service }

// Create implements the domain ServicePort interface
func (a adaptKnowledgePort) Create(ctx context.Context, in knowledgedom.CreateInput) (knowledgedom.Entry, error) {
	return a.svc.Create(ctx, in)
}

// Update implements the domain ServicePort interface
func (a adaptKnowledgePort) Update(ctx context.Context, id string, in knowledgedom.UpdateInput) (knowledgedom.Entry, error) {
	return a.svc.Update(ctx, id, in)
}

// Delete implements the domain ServicePort interface
func (a adaptKnowledgePort) Delete(ctx context.Context, id string) error {
	return a.svc.Delete(ctx, id)
}

// List implements the domain ServicePort interface
func (a adaptKnowledgePort) List(ctx context.Context) ([]knowledgedom.Entry, error) {
	return a.svc.List(ctx)
}

// Search implements the domain ServicePort interface
func (a adaptKnowledgePort) Search(ctx context.Context, query string) ([]knowledgedom.Entry, error) {
	return a.svc.Search(ctx, query)
}
