package domain

import "context"

// ServicePort defines the tickets service contract
type ServicePort interface {
	Submit(ctx context.Context, clientKey string, in SubmitInput) (SubmitResult, error)
	List(ctx context.Context, in ListInput) ([]Ticket, int, error)
	UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (Ticket, error)
	ExportCSV(ctx context.Context, in ExportInput) ([]byte, string, error)
}

// QueuePort is the slice of the queue projector the submission flow needs
// refresh after a successful insert so the visible queue includes the new row,
// then report the 1 based position for the submitter
type QueuePort interface {
	Refresh(ctx context.Context) error
	Position(ctx context.Context, email string) (int, error)
}
