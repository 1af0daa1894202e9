package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/analytics"
	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/fixtures"
)

const (
	// activityWindow is how far back the recent-activity feed looks.
	activityWindow = 7 * 24 * time.Hour

	activityFeedLimit        = 10
	recentContractsLimit     = 5
	recentRequestsLimit      = 5
	recentStatusUpdatesLimit = 3
)

// Service aggregates contract and request figures for the dashboard.
type Service struct {
	analytics.AnalyticsRepository
	company.CompanyRepository
	now func() time.Time
}

func NewService(analyticsRepository analytics.AnalyticsRepository, companyRepository company.CompanyRepository) *Service {
	return &Service{
		AnalyticsRepository: analyticsRepository,
		CompanyRepository:   companyRepository,
		now:                 time.Now,
	}
}

func (s *Service) GetOverview(ctx context.Context) (analytics.Overview, error) {
	now := s.now()

	expiringDays := fixtures.FallbackNotificationSettings().ExpiringContractDays
	if c, err := s.CompanyRepository.GetPrimary(ctx); err == nil {
		expiringDays = c.Settings.ContractNotifications.ExpiringContractDays
	} else if !errors.Is(err, company.ErrNoPrimaryCompany) {
		return analytics.Overview{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	contractSummary, err := s.GetContractSummary(ctx, now, time.Duration(expiringDays)*24*time.Hour)
	if err != nil {
		return analytics.Overview{}, fmt.Errorf("failed to get contract summary: %w", err)
	}

	byStatus, err := s.GetContractsByStatus(ctx)
	if err != nil {
		return analytics.Overview{}, fmt.Errorf("failed to get contracts by status: %w", err)
	}

	byType, err := s.GetContractsByType(ctx)
	if err != nil {
		return analytics.Overview{}, fmt.Errorf("failed to get contracts by type: %w", err)
	}

	monthly, err := s.GetMonthlyContracts(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		return analytics.Overview{}, fmt.Errorf("failed to get monthly contracts: %w", err)
	}

	requestSummary, err := s.GetRequestSummary(ctx)
	if err != nil {
		return analytics.Overview{}, fmt.Errorf("failed to get request summary: %w", err)
	}

	return analytics.Overview{
		Contracts:         *contractSummary,
		ContractsByStatus: byStatus,
		ContractsByType:   byType,
		MonthlyContracts:  monthly,
		Requests:          *requestSummary,
	}, nil
}

// GetRecentActivity merges contract creations, request workflow events
// and status changes from the last seven days into one feed, newest
// first.
func (s *Service) GetRecentActivity(ctx context.Context) ([]analytics.Activity, error) {
	since := s.now().Add(-activityWindow)

	created, err := s.GetRecentContracts(ctx, since, recentContractsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent contracts: %w", err)
	}
	requests, err := s.GetRecentRequests(ctx, since, recentRequestsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent requests: %w", err)
	}
	updated, err := s.GetRecentStatusUpdates(ctx, since, recentStatusUpdatesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent status updates: %w", err)
	}

	activities := make([]analytics.Activity, 0, len(created)+len(requests)+len(updated))
	for _, c := range created {
		activities = append(activities, analytics.Activity{
			ID:          "contract-" + c.ContractID,
			Type:        "contract_created",
			Title:       "New Contract Created",
			Description: fmt.Sprintf("%s contract for %s", c.ContractType, nameOrUnknown(c.EmployeeName)),
			Timestamp:   c.CreatedAt,
			User:        c.EmployeeName,
		})
	}
	for _, r := range requests {
		activities = append(activities, requestFeedEntry(r))
	}
	for _, c := range updated {
		timestamp := c.CreatedAt
		if c.LastStatusUpdate != nil {
			timestamp = *c.LastStatusUpdate
		}
		activities = append(activities, analytics.Activity{
			ID:          "update-" + c.ContractID,
			Type:        "contract_updated",
			Title:       "Contract Status Updated",
			Description: fmt.Sprintf("Contract status changed to %s for %s", c.Status, nameOrUnknown(c.EmployeeName)),
			Timestamp:   timestamp,
			User:        c.EmployeeName,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > activityFeedLimit {
		activities = activities[:activityFeedLimit]
	}
	return activities, nil
}

func requestFeedEntry(r analytics.RequestActivity) analytics.Activity {
	name := nameOrUnknown(r.EmployeeName)

	entry := analytics.Activity{
		ID:          "request-" + r.RequestID,
		Type:        "request_submitted",
		Title:       "Request Submitted",
		Description: fmt.Sprintf("%s request for %s", r.RequestType, name),
		Timestamp:   r.CreatedAt,
		User:        r.EmployeeName,
	}
	switch r.Status {
	case request.StatusApproved:
		entry.Type = "request_approved"
		entry.Title = "Request Approved"
		entry.Description = fmt.Sprintf("%s request approved for %s", r.RequestType, name)
	case request.StatusRejected:
		entry.Title = "Request Rejected"
		entry.Description = fmt.Sprintf("%s request rejected for %s", r.RequestType, name)
	}
	if r.ProcessedAt != nil {
		entry.Timestamp = *r.ProcessedAt
	}
	return entry
}

func nameOrUnknown(name *string) string {
	if name == nil || *name == "" {
		return "Unknown User"
	}
	return *name
}
