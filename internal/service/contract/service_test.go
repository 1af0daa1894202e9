package contract

import (
	"context"
	"testing"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeContractRepo) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) Update(ctx context.Context, upd contract.ContractUpdate) error {
	c, ok := f.contracts[upd.ID]
	if !ok {
		return contract.ErrContractNotFound
	}
	c.Type = upd.Type
	c.StartDate = upd.StartDate
	c.EndDate = upd.EndDate
	f.contracts[upd.ID] = c
	return nil
}

func updateService(repo *fakeContractRepo) *Service {
	return &Service{
		ContractRepository: repo,
		now:                time.Now,
	}
}

func TestUpdateContractExtendsEndDate(t *testing.T) {
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusExpiringSoon, "2024-01-01", strPtr("2025-07-01")),
	)
	svc := updateService(repo)

	updated, err := svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:      "c1",
		EndDate: strPtr("2026-07-01"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.EndDate)
	assert.Equal(t, day("2026-07-01"), *updated.EndDate)
	// Untouched fields keep their current values.
	assert.Equal(t, day("2024-01-01"), updated.StartDate)
	assert.Equal(t, contract.TypeCDD, updated.Type)
	// The status column is owned by reconciliation, not by updates.
	assert.Equal(t, contract.StatusExpiringSoon, repo.contracts["c1"].Status)
}

func TestUpdateContractClearEndDate(t *testing.T) {
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-07-01")),
	)
	svc := updateService(repo)

	updated, err := svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:           "c1",
		Type:         strPtr(string(contract.TypeCDI)),
		ClearEndDate: true,
	})
	require.NoError(t, err)

	assert.Nil(t, updated.EndDate)
	assert.Equal(t, contract.TypeCDI, updated.Type)
}

func TestUpdateContractRejectsMalformedDates(t *testing.T) {
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-07-01")),
	)
	svc := updateService(repo)

	_, err := svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:      "c1",
		EndDate: strPtr("01-07-2026"),
	})
	require.Error(t, err)

	_, err = svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:        "c1",
		StartDate: strPtr("not-a-date"),
	})
	require.Error(t, err)

	// Nothing was written.
	assert.Equal(t, day("2024-01-01"), repo.contracts["c1"].StartDate)
	assert.Equal(t, day("2025-07-01"), *repo.contracts["c1"].EndDate)
}

func TestUpdateContractRejectsEndBeforeStart(t *testing.T) {
	repo := newFakeContractRepo(
		testContract("c1", contract.StatusActive, "2024-01-01", strPtr("2025-07-01")),
	)
	svc := updateService(repo)

	_, err := svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:      "c1",
		EndDate: strPtr("2023-12-01"),
	})
	assert.ErrorIs(t, err, contract.ErrEndBeforeStart)

	// Moving the start past the kept end date is the same violation.
	_, err = svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:        "c1",
		StartDate: strPtr("2025-08-01"),
	})
	assert.ErrorIs(t, err, contract.ErrEndBeforeStart)
}

func TestUpdateUnknownContract(t *testing.T) {
	svc := updateService(newFakeContractRepo())

	_, err := svc.Update(context.Background(), contract.UpdateContractRequest{
		ID:      "missing",
		EndDate: strPtr("2026-07-01"),
	})
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
}
