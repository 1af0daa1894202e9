package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContractRepo keeps contracts in memory and records applied
// mutations, standing in for the postgres repository.
type fakeContractRepo struct {
	contract.ContractRepository

	contracts map[string]contract.Contract
	history   []contract.StatusHistoryEntry
	batches   int
}

func newFakeContractRepo(contracts ...contract.Contract) *fakeContractRepo {
	repo := &fakeContractRepo{contracts: make(map[string]contract.Contract)}
	for _, c := range contracts {
		repo.contracts[c.ID] = c
	}
	return repo
}

func (f *fakeContractRepo) GetReconcilable(ctx context.Context) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range f.contracts {
		if c.Status != contract.StatusTerminated {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ApplyStatusMutations(ctx context.Context, mutations []contract.StatusMutation) error {
	f.batches++
	for _, m := range mutations {
		c := f.contracts[m.ContractID]
		c.Status = m.Status
		c.LastStatusUpdate = &m.UpdatedAt
		f.contracts[m.ContractID] = c
		f.history = append(f.history, m.History)
	}
	return nil
}

func (f *fakeContractRepo) GetExpiring(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range f.contracts {
		if c.Status != contract.StatusActive && c.Status != contract.StatusExpiringSoon {
			continue
		}
		if c.EndDate == nil || c.EndDate.Before(from) || c.EndDate.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContractRepo) GetExpired(ctx context.Context, now time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range f.contracts {
		if c.Status == contract.StatusExpired && c.EndDate != nil && c.EndDate.Before(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeCompanyRepo serves one company record, or none.
type fakeCompanyRepo struct {
	company.CompanyRepository

	primary *company.Company
}

func (f *fakeCompanyRepo) GetPrimary(ctx context.Context) (company.Company, error) {
	if f.primary == nil {
		return company.Company{}, company.ErrNoPrimaryCompany
	}
	return *f.primary, nil
}

func companyWith(expiringDays, graceDays int) *company.Company {
	return &company.Company{
		ID:   "company-1",
		Name: "Acme",
		Settings: company.Settings{
			ContractNotifications: company.NotificationSettings{
				Enabled:                  true,
				ExpiringContractDays:     expiringDays,
				ExpiredContractGraceDays: graceDays,
			},
		},
	}
}

func testContract(id string, status contract.Status, start string, end *string) contract.Contract {
	c := contract.Contract{
		ID:         id,
		EmployeeID: "employee-" + id,
		Type:       contract.TypeCDD,
		StartDate:  day(start),
		Status:     status,
	}
	if end != nil {
		c.EndDate = dayPtr(*end)
	} else {
		c.Type = contract.TypeCDI
	}
	return c
}

func strPtr(s string) *string { return &s }

func TestReconcileAllTransitions(t *testing.T) {
	now := day("2025-06-15")

	repo := newFakeContractRepo(
		// Active -> Expiring Soon, 10 days left
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-06-25")),
		// Expiring Soon -> Expired, ended long ago
		testContract("c2", contract.StatusExpiringSoon, "2024-01-01", strPtr("2025-05-01")),
		// Expiring Soon -> Active, end date pushed out
		testContract("c3", contract.StatusExpiringSoon, "2024-01-01", strPtr("2026-01-01")),
		// Active stays Active, no write
		testContract("c4", contract.StatusActive, "2024-01-01", strPtr("2026-06-01")),
		// Terminated is never touched
		testContract("c5", contract.StatusTerminated, "2023-01-01", strPtr("2024-01-01")),
		// Permanent contract stays Active
		testContract("c6", contract.StatusActive, "2024-01-01", nil),
	)
	companies := &fakeCompanyRepo{primary: companyWith(30, 0)}

	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })
	updates, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)

	byID := make(map[string]contract.StatusUpdate)
	for _, u := range updates {
		byID[u.ContractID] = u
	}
	require.Len(t, updates, 3)

	assert.Equal(t, contract.StatusExpiringSoon, byID["c1"].NewStatus)
	assert.Equal(t, "Contract expires in 10 days (notification set for 30 days)", byID["c1"].Reason)

	assert.Equal(t, contract.StatusExpired, byID["c2"].NewStatus)
	assert.Equal(t, "Contract expired on 2025-05-01", byID["c2"].Reason)

	assert.Equal(t, contract.StatusActive, byID["c3"].NewStatus)
	assert.Equal(t, "Contract end date was extended", byID["c3"].Reason)

	// Statuses persisted, one batch, history rows attributed to system.
	assert.Equal(t, 1, repo.batches)
	assert.Equal(t, contract.StatusExpiringSoon, repo.contracts["c1"].Status)
	assert.Equal(t, contract.StatusExpired, repo.contracts["c2"].Status)
	assert.Equal(t, contract.StatusTerminated, repo.contracts["c5"].Status)
	require.Len(t, repo.history, 3)
	for _, h := range repo.history {
		assert.Equal(t, "system", h.UpdatedBy)
		assert.Equal(t, now, h.UpdatedAt)
	}
}

func TestReconcileAllRecordsPreviousStatus(t *testing.T) {
	now := day("2025-06-15")
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-05-01")),
	)
	companies := &fakeCompanyRepo{primary: companyWith(30, 0)}

	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })
	_, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.history, 1)
	assert.Equal(t, contract.StatusActive, repo.history[0].PreviousStatus)
	assert.Equal(t, contract.StatusExpired, repo.history[0].Status)
}

func TestReconcileAllIsIdempotent(t *testing.T) {
	now := day("2025-06-15")
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-06-25")),
		testContract("c2", contract.StatusActive, "2024-01-01", strPtr("2025-05-01")),
	)
	companies := &fakeCompanyRepo{primary: companyWith(30, 0)}
	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })

	first, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 1, repo.batches)
}

func TestReconcileAllUsesFallbackSettings(t *testing.T) {
	now := day("2025-06-15")
	repo := newFakeContractRepo(
		// 20 days out: expiring under the 30-day fallback window.
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-07-05")),
		// one day past end: expired, fallback grace is 0.
		testContract("c2", contract.StatusActive, "2024-01-01", strPtr("2025-06-14")),
	)
	companies := &fakeCompanyRepo{primary: nil}
	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })

	updates, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 2)

	byID := make(map[string]contract.StatusUpdate)
	for _, u := range updates {
		byID[u.ContractID] = u
	}
	assert.Equal(t, contract.StatusExpiringSoon, byID["c1"].NewStatus)
	assert.Equal(t, contract.StatusExpired, byID["c2"].NewStatus)
}

func TestReconcileAllGenericReason(t *testing.T) {
	now := day("2025-06-15")
	// Pending -> Active when the start date arrives.
	c := testContract("c1", contract.StatusPending, "2025-06-01", strPtr("2026-06-01"))
	repo := newFakeContractRepo(c)
	companies := &fakeCompanyRepo{primary: companyWith(30, 0)}
	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })

	updates, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, contract.StatusActive, updates[0].NewStatus)
	assert.Equal(t, "Status changed from Pending to Active", updates[0].Reason)
}

func TestGetExpiringContractsDefaultsToCompanyWindow(t *testing.T) {
	now := day("2025-06-15")
	repo := newFakeContractRepo(
		testContract("inside", contract.StatusActive, "2024-01-01", strPtr("2025-06-20")),
		testContract("outside", contract.StatusActive, "2024-01-01", strPtr("2025-08-01")),
		testContract("expired", contract.StatusExpired, "2024-01-01", strPtr("2025-05-01")),
	)
	companies := &fakeCompanyRepo{primary: companyWith(10, 0)}
	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })

	contracts, err := svc.GetExpiringContracts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "inside", contracts[0].ID)

	// Explicit days override the company window.
	contracts, err = svc.GetExpiringContracts(context.Background(), 60)
	require.NoError(t, err)
	assert.Len(t, contracts, 2)
}

func TestGetExpiredContracts(t *testing.T) {
	now := day("2025-06-15")
	repo := newFakeContractRepo(
		testContract("e1", contract.StatusExpired, "2024-01-01", strPtr("2025-05-01")),
		testContract("a1", contract.StatusActive, "2024-01-01", strPtr("2026-05-01")),
	)
	companies := &fakeCompanyRepo{primary: companyWith(30, 0)}
	svc := NewStatusServiceWithClock(repo, companies, func() time.Time { return now })

	contracts, err := svc.GetExpiredContracts(context.Background())
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "e1", contracts[0].ID)
}

func TestTransitionReasonFormats(t *testing.T) {
	now := day("2025-06-15")
	s := settings(14, 0)

	c := testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-06-20"))
	reason := transitionReason(now, c, contract.StatusExpiringSoon, s)
	assert.Equal(t, "Contract expires in 5 days (notification set for 14 days)", reason)

	c = testContract("c2", contract.StatusExpiringSoon, "2024-01-01", strPtr("2025-06-01"))
	reason = transitionReason(now, c, contract.StatusExpired, s)
	assert.Equal(t, "Contract expired on 2025-06-01", reason)

	c = testContract("c3", contract.StatusExpired, "2024-01-01", strPtr("2026-06-01"))
	reason = transitionReason(now, c, contract.StatusActive, s)
	assert.Equal(t, fmt.Sprintf("Status changed from %s to %s", contract.StatusExpired, contract.StatusActive), reason)
}
