package request

import (
	"context"
)

// RequestRepository - interface for the requests table.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// ListAll returns every request with employee/contract/processor
	// joins, newest first. Admin view.
	ListAll(ctx context.Context) ([]Request, error)

	// ListByEmployee returns the employee's own requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// HasPendingForContract reports whether a pending request already
	// exists for the contract. Enforced at creation time.
	HasPendingForContract(ctx context.Context, contractID string) (bool, error)

	// MarkProcessed transitions a request out of pending. Implementations
	// must only touch rows still in pending state.
	MarkProcessed(ctx context.Context, req MarkProcessedRequest) error
}
