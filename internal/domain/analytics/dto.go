package analytics

import (
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
)

// ContractSummary aggregates headline contract counts for dashboards.
type ContractSummary struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Expiring   int64 `json:"expiring"`
	Terminated int64 `json:"terminated"`
}

// RequestSummary aggregates request workflow counts.
type RequestSummary struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// MonthlyCount is one month's bucket of created contracts.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	User        *string   `json:"user,omitempty"`
}

// ContractActivity is a raw contract row feeding the activity feed.
type ContractActivity struct {
	ContractID       string
	ContractType     contract.Type
	Status           contract.Status
	EmployeeName     *string
	CreatedAt        time.Time
	LastStatusUpdate *time.Time
}

// RequestActivity is a raw request row feeding the activity feed.
type RequestActivity struct {
	RequestID    string
	RequestType  request.RequestType
	Status       request.RequestStatus
	EmployeeName *string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}

// Overview is the full analytics payload.
type Overview struct {
	Contracts        ContractSummary  `json:"contracts"`
	ContractsByStatus map[string]int64 `json:"contracts_by_status"`
	ContractsByType   map[string]int64 `json:"contracts_by_type"`
	MonthlyContracts  []MonthlyCount   `json:"monthly_contracts"`
	Requests          RequestSummary   `json:"requests"`
}
