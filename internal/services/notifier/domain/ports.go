// Package domain declares the notifier ports
package domain

import "context"

// WorkerPort runs the notifier delivery loop until the context ends
type WorkerPort interface {
	Run(ctx context.Context) error
}
