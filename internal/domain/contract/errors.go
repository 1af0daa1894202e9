package contract

import "errors"

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrDocumentNotFound  = errors.New("contract document not found")
	ErrNotContractOwner  = errors.New("contract does not belong to this employee")
	ErrInvalidType       = errors.New("invalid contract type")
	ErrInvalidStatus     = errors.New("invalid contract status")
	ErrEndBeforeStart    = errors.New("end date cannot be before start date")
	ErrEndDateRequired   = errors.New("end date is required for fixed-term contracts")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrStartDateRequired = errors.New("start date is required")
)
