package request

import "errors"

var (
	ErrRequestNotFound        = errors.New("request not found")
	ErrAlreadyProcessed       = errors.New("request has already been processed")
	ErrPendingRequestExists   = errors.New("there is already a pending request for this contract")
	ErrInvalidType            = errors.New("invalid request type")
	ErrInvalidAction          = errors.New("invalid action")
	ErrRequestedStatusMissing = errors.New("requested status is required for status_change requests")
)
