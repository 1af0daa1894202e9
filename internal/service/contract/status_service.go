package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/fixtures"
)

// systemActor is recorded as updated_by on reconciliation writes.
const systemActor = "system"

// Clock returns the current time. Injected so reconciliation tests can
// pin the clock.
type Clock func() time.Time

// StatusService owns the status reconciliation pass and the expiry
// queries. The persisted status column is the single source of truth
// between passes; queries never recompute.
type StatusService struct {
	contract.ContractRepository
	company.CompanyRepository
	now Clock
}

func NewStatusService(contractRepository contract.ContractRepository, companyRepository company.CompanyRepository) *StatusService {
	return &StatusService{
		ContractRepository: contractRepository,
		CompanyRepository:  companyRepository,
		now:                time.Now,
	}
}

// NewStatusServiceWithClock is for tests.
func NewStatusServiceWithClock(contractRepository contract.ContractRepository, companyRepository company.CompanyRepository, clock Clock) *StatusService {
	s := NewStatusService(contractRepository, companyRepository)
	s.now = clock
	return s
}

// notificationSettings loads the primary company's settings, falling
// back to defaults when no company record exists yet.
func (s *StatusService) notificationSettings(ctx context.Context) (company.NotificationSettings, error) {
	c, err := s.CompanyRepository.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, company.ErrNoPrimaryCompany) {
			return fixtures.FallbackNotificationSettings(), nil
		}
		return company.NotificationSettings{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	return c.Settings.ContractNotifications, nil
}

// ReconcileAll recomputes the status of every non-terminated contract
// and applies the changed ones as a single batch. Re-running with the
// same clock and data is a no-op.
func (s *StatusService) ReconcileAll(ctx context.Context) ([]contract.StatusUpdate, error) {
	settings, err := s.notificationSettings(ctx)
	if err != nil {
		return nil, err
	}

	contracts, err := s.ContractRepository.GetReconcilable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts for reconciliation: %w", err)
	}

	now := s.now()
	var mutations []contract.StatusMutation
	var updates []contract.StatusUpdate

	for _, c := range contracts {
		newStatus := CalculateStatus(now, c.StartDate, c.EndDate, settings)
		if newStatus == c.Status {
			continue
		}

		reason := transitionReason(now, c, newStatus, settings)
		mutations = append(mutations, contract.StatusMutation{
			ContractID: c.ID,
			Status:     newStatus,
			UpdatedAt:  now,
			History: contract.StatusHistoryEntry{
				ContractID:     c.ID,
				Status:         newStatus,
				PreviousStatus: c.Status,
				Reason:         reason,
				UpdatedBy:      systemActor,
				UpdatedAt:      now,
			},
		})
		updates = append(updates, contract.StatusUpdate{
			ContractID: c.ID,
			OldStatus:  c.Status,
			NewStatus:  newStatus,
			Reason:     reason,
			UpdatedAt:  now,
		})
	}

	if len(mutations) == 0 {
		return nil, nil
	}

	if err := s.ContractRepository.ApplyStatusMutations(ctx, mutations); err != nil {
		// Not retried here: the next pass recomputes from scratch.
		slog.Error("status reconciliation batch failed", "error", err, "staged", len(mutations))
		return nil, fmt.Errorf("failed to apply status updates: %w", err)
	}

	return updates, nil
}

// transitionReason builds the audit trail message for one transition.
func transitionReason(now time.Time, c contract.Contract, newStatus contract.Status, settings company.NotificationSettings) string {
	switch {
	case newStatus == contract.StatusExpired && c.EndDate != nil:
		return fmt.Sprintf("Contract expired on %s", c.EndDate.Format("2006-01-02"))
	case newStatus == contract.StatusExpiringSoon && c.EndDate != nil:
		return fmt.Sprintf("Contract expires in %d days (notification set for %d days)",
			DaysUntilEnd(now, *c.EndDate), settings.ExpiringContractDays)
	case newStatus == contract.StatusActive && c.Status == contract.StatusExpiringSoon:
		return "Contract end date was extended"
	default:
		return fmt.Sprintf("Status changed from %s to %s", c.Status, newStatus)
	}
}

// GetExpiringContracts returns contracts whose end date falls within
// the next `days` days. Zero days means the company's configured
// expiring window.
func (s *StatusService) GetExpiringContracts(ctx context.Context, days int) ([]contract.Contract, error) {
	if days <= 0 {
		settings, err := s.notificationSettings(ctx)
		if err != nil {
			return nil, err
		}
		days = settings.ExpiringContractDays
	}

	now := s.now()
	contracts, err := s.ContractRepository.GetExpiring(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring contracts: %w", err)
	}
	return contracts, nil
}

// GetExpiredContracts returns contracts already marked Expired.
func (s *StatusService) GetExpiredContracts(ctx context.Context) ([]contract.Contract, error) {
	contracts, err := s.ContractRepository.GetExpired(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get expired contracts: %w", err)
	}
	return contracts, nil
}
