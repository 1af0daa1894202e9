package contract

import (
	"context"
	"time"
)

// ContractRepository - interface for the contracts table and its
// status_history / documents child tables.
type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, id string) (Contract, error)
	List(ctx context.Context) ([]Contract, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Contract, error)
	Update(ctx context.Context, upd ContractUpdate) error
	Delete(ctx context.Context, id string) error

	// GetReconcilable returns every contract whose status is not
	// Terminated. Terminated contracts are excluded from automatic
	// recomputation; termination is never auto-reverted.
	GetReconcilable(ctx context.Context) ([]Contract, error)

	// ApplyStatusMutations applies staged reconciliation writes as a
	// single batch: status + last_status_update on the contract and an
	// appended history row per mutation.
	ApplyStatusMutations(ctx context.Context, mutations []StatusMutation) error

	// UpdateStatus sets status and last_status_update on one contract.
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error

	// AppendStatusHistory appends one entry to the contract's audit
	// trail. The trail is append-only; there is no update or delete.
	AppendStatusHistory(ctx context.Context, entry StatusHistoryEntry) error
	GetStatusHistory(ctx context.Context, contractID string) ([]StatusHistoryEntry, error)

	// GetExpiring returns contracts with status Active or Expiring Soon
	// and an end date inside [from, to], ascending by end date.
	GetExpiring(ctx context.Context, from, to time.Time) ([]Contract, error)

	// GetExpired returns contracts with status Expired and an end date
	// before now, descending by end date.
	GetExpired(ctx context.Context, now time.Time) ([]Contract, error)

	AddDocument(ctx context.Context, doc Document) (Document, error)
	GetDocuments(ctx context.Context, contractID string) ([]Document, error)
	RemoveDocument(ctx context.Context, contractID, documentID string) error
}
