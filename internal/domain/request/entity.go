package request

import (
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
)

type RequestType string

const (
	TypeRenewal      RequestType = "renewal"
	TypeTermination  RequestType = "termination"
	TypeStatusChange RequestType = "status_change"
)

// ValidTypes lists every accepted request type.
var ValidTypes = []string{
	string(TypeRenewal),
	string(TypeTermination),
	string(TypeStatusChange),
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request entity. pending -> {approved, rejected}; terminal states are
// immutable.
type Request struct {
	ID         string
	EmployeeID string
	ContractID string

	Type RequestType

	// CurrentStatus snapshots the contract status at creation time.
	CurrentStatus contract.Status
	// RequestedStatus is only meaningful when Type is status_change.
	RequestedStatus *contract.Status

	Reason string

	Status      RequestStatus
	AdminNotes  *string
	ProcessedBy *string
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
	ContractType  *contract.Type
	ProcessorName *string
}

// IsPending reports whether the request can still be processed.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// TargetContractStatus resolves the contract status an approval applies.
func (r *Request) TargetContractStatus() (contract.Status, error) {
	switch r.Type {
	case TypeTermination:
		return contract.StatusTerminated, nil
	case TypeRenewal:
		return contract.StatusActive, nil
	case TypeStatusChange:
		if r.RequestedStatus == nil {
			return "", ErrRequestedStatusMissing
		}
		return *r.RequestedStatus, nil
	}
	return "", ErrInvalidType
}
