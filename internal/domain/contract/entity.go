package contract

import "time"

// Status is the lifecycle state of a contract. It is a cached derived
// value: consistent with the contract dates and company settings as of
// the last reconciliation run, not a live computation.
type Status string

const (
	StatusPending      Status = "Pending" // start date in the future
	StatusActive       Status = "Active"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusExpired      Status = "Expired"
	StatusTerminated   Status = "Terminated"
)

// ValidStatuses lists every persistable status value.
var ValidStatuses = []string{
	string(StatusPending),
	string(StatusActive),
	string(StatusExpiringSoon),
	string(StatusExpired),
	string(StatusTerminated),
}

// Type is the contract kind. "Terminated" exists here as well as in
// Status; the two enums are intentionally kept independent.
type Type string

const (
	TypeCDD        Type = "CDD" // fixed-term
	TypeCDI        Type = "CDI" // permanent, no end date
	TypeInternship Type = "Internship"
	TypeTerminated Type = "Terminated"
)

// ValidTypes lists every persistable contract type.
var ValidTypes = []string{
	string(TypeCDD),
	string(TypeCDI),
	string(TypeInternship),
	string(TypeTerminated),
}

// Contract entity
type Contract struct {
	ID         string
	EmployeeID string
	CompanyID  *string

	Type      Type
	StartDate time.Time
	EndDate   *time.Time // nil for permanent (CDI) contracts

	Status           Status
	LastStatusUpdate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
}

// IsPermanent reports whether the contract has no end date.
func (c *Contract) IsPermanent() bool {
	return c.EndDate == nil
}

// StatusHistoryEntry is one row of a contract's append-only audit
// trail. Entries are never rewritten or truncated.
type StatusHistoryEntry struct {
	ID             string
	ContractID     string
	Status         Status
	PreviousStatus Status
	Reason         string
	UpdatedBy      string
	UpdatedAt      time.Time
}

// Document is a file attached to a contract.
type Document struct {
	ID         string
	ContractID string
	FileName   string
	FileURL    string
	UploadDate time.Time
}

// StatusUpdate describes one applied transition, returned by the
// reconciliation job for logging and notification display.
type StatusUpdate struct {
	ContractID string    `json:"contract_id"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
	Reason     string    `json:"reason"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StatusMutation is one staged write of the reconciliation batch: the
// new status plus the history entry that records the transition.
type StatusMutation struct {
	ContractID string
	Status     Status
	UpdatedAt  time.Time
	History    StatusHistoryEntry
}
