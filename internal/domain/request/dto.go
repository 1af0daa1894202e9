package request

import (
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	ContractID      string  `json:"contract_id"`
	Type            string  `json:"type"`
	Reason          string  `json:"reason,omitempty"`
	RequestedStatus *string `json:"requested_status,omitempty"`

	// EmployeeID comes from the session, not the body.
	EmployeeID string `json:"-"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs = append(errs, validator.ValidationError{
			Field:   "contract_id",
			Message: "contract_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be renewal, termination or status_change",
		})
	}

	if r.Type == string(TypeStatusChange) {
		if r.RequestedStatus == nil || validator.IsEmpty(*r.RequestedStatus) {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_status",
				Message: "requested_status is required for status_change requests",
			})
		} else if !validator.IsInSlice(*r.RequestedStatus, contract.ValidStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_status",
				Message: "requested_status is not a valid contract status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessAction string

const (
	ActionApprove ProcessAction = "approve"
	ActionReject  ProcessAction = "reject"
)

type ProcessRequestRequest struct {
	RequestID  string `json:"request_id"`
	Action     string `json:"action"`
	AdminNotes string `json:"admin_notes,omitempty"`

	// Admin identity from the session.
	ProcessedBy   string `json:"-"`
	ProcessorName string `json:"-"`
}

func (r *ProcessRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Action != string(ActionApprove) && r.Action != string(ActionReject) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: `action must be "approve" or "reject"`,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MarkProcessedRequest carries the terminal-state transition written by
// the repository.
type MarkProcessedRequest struct {
	ID          string
	Status      RequestStatus
	ProcessedBy string
	AdminNotes  *string
}
