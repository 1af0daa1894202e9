package request

import (
	"context"
	"testing"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	request.RequestRepository

	requests map[string]request.Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]request.Request), nextID: 1}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req request.Request) (request.Request, error) {
	req.ID = string(rune('0' + f.nextID))
	f.nextID++
	req.CreatedAt = time.Now()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) HasPendingForContract(ctx context.Context, contractID string) (bool, error) {
	for _, req := range f.requests {
		if req.ContractID == contractID && req.Status == request.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) MarkProcessed(ctx context.Context, req request.MarkProcessedRequest) error {
	existing, ok := f.requests[req.ID]
	if !ok || existing.Status != request.StatusPending {
		return request.ErrAlreadyProcessed
	}
	now := time.Now()
	existing.Status = req.Status
	existing.ProcessedBy = &req.ProcessedBy
	existing.ProcessedAt = &now
	existing.AdminNotes = req.AdminNotes
	f.requests[req.ID] = existing
	return nil
}

type fakeContractRepo struct {
	contract.ContractRepository

	contracts map[string]contract.Contract
	history   []contract.StatusHistoryEntry
}

func newFakeContractRepo(contracts ...contract.Contract) *fakeContractRepo {
	repo := &fakeContractRepo{contracts: make(map[string]contract.Contract)}
	for _, c := range contracts {
		repo.contracts[c.ID] = c
	}
	return repo
}

func (f *fakeContractRepo) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) UpdateStatus(ctx context.Context, id string, status contract.Status, updatedAt time.Time) error {
	c, ok := f.contracts[id]
	if !ok {
		return contract.ErrContractNotFound
	}
	c.Status = status
	c.LastStatusUpdate = &updatedAt
	f.contracts[id] = c
	return nil
}

func (f *fakeContractRepo) AppendStatusHistory(ctx context.Context, entry contract.StatusHistoryEntry) error {
	f.history = append(f.history, entry)
	return nil
}

func newTestService(requests *fakeRequestRepo, contracts *fakeContractRepo) *Service {
	return &Service{
		RequestRepository:  requests,
		ContractRepository: contracts,
		withTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
		now: time.Now,
	}
}

func activeContract(id, employeeID string) contract.Contract {
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return contract.Contract{
		ID:         id,
		EmployeeID: employeeID,
		Type:       contract.TypeCDD,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    &end,
		Status:     contract.StatusActive,
	}
}

func TestCreateRequest(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeTermination),
		Reason:     "Leaving the company",
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, created.Status)
	assert.Equal(t, contract.StatusActive, created.CurrentStatus, "snapshots the contract status at creation")
	assert.Equal(t, "Leaving the company", created.Reason)
}

func TestCreateRequestDefaultReason(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeRenewal),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)
	assert.Equal(t, "renewal requested by employee", created.Reason)
}

func TestCreateRequestGuards(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	t.Run("unknown contract", func(t *testing.T) {
		_, err := svc.Create(context.Background(), request.CreateRequestRequest{
			ContractID: "missing",
			Type:       string(request.TypeRenewal),
			EmployeeID: "emp1",
		})
		assert.ErrorIs(t, err, contract.ErrContractNotFound)
	})

	t.Run("not the contract owner", func(t *testing.T) {
		_, err := svc.Create(context.Background(), request.CreateRequestRequest{
			ContractID: "ct1",
			Type:       string(request.TypeRenewal),
			EmployeeID: "someone-else",
		})
		assert.ErrorIs(t, err, contract.ErrNotContractOwner)
	})

	t.Run("duplicate pending request", func(t *testing.T) {
		_, err := svc.Create(context.Background(), request.CreateRequestRequest{
			ContractID: "ct1",
			Type:       string(request.TypeRenewal),
			EmployeeID: "emp1",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), request.CreateRequestRequest{
			ContractID: "ct1",
			Type:       string(request.TypeTermination),
			EmployeeID: "emp1",
		})
		assert.ErrorIs(t, err, request.ErrPendingRequestExists)
	})
}

func TestApproveTermination(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeTermination),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	processed, err := svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:     created.ID,
		Action:        string(request.ActionApprove),
		AdminNotes:    "Confirmed with HR",
		ProcessedBy:   "admin-1",
		ProcessorName: "Alice Admin",
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusApproved, processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, "admin-1", *processed.ProcessedBy)

	assert.Equal(t, contract.StatusTerminated, contracts.contracts["ct1"].Status)

	require.Len(t, contracts.history, 1)
	h := contracts.history[0]
	assert.Equal(t, contract.StatusTerminated, h.Status)
	assert.Equal(t, contract.StatusActive, h.PreviousStatus)
	assert.Equal(t, "termination approved by admin: Confirmed with HR", h.Reason)
	assert.Equal(t, "Alice Admin", h.UpdatedBy)
}

func TestApproveWithoutNotesOmitsSuffix(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeRenewal),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      string(request.ActionApprove),
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)

	require.Len(t, contracts.history, 1)
	assert.Equal(t, "renewal approved by admin", contracts.history[0].Reason)
	// No processor name on the session, fall back to the id.
	assert.Equal(t, "admin-1", contracts.history[0].UpdatedBy)
	assert.Equal(t, contract.StatusActive, contracts.contracts["ct1"].Status)
}

func TestApproveStatusChange(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	requested := string(contract.StatusExpired)
	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID:      "ct1",
		Type:            string(request.TypeStatusChange),
		RequestedStatus: &requested,
		EmployeeID:      "emp1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      string(request.ActionApprove),
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, contract.StatusExpired, contracts.contracts["ct1"].Status)
}

func TestRejectLeavesContractUntouched(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeTermination),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	processed, err := svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      string(request.ActionReject),
		AdminNotes:  "Not eligible",
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusRejected, processed.Status)
	assert.Equal(t, contract.StatusActive, contracts.contracts["ct1"].Status)
	assert.Empty(t, contracts.history)
}

func TestProcessTerminalRequestConflicts(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeTermination),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      string(request.ActionReject),
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)

	// A second pass in either direction conflicts.
	_, err = svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      string(request.ActionApprove),
		ProcessedBy: "admin-2",
	})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)
}

func TestProcessUnknownAction(t *testing.T) {
	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(activeContract("ct1", "emp1"))
	svc := newTestService(requests, contracts)

	created, err := svc.Create(context.Background(), request.CreateRequestRequest{
		ContractID: "ct1",
		Type:       string(request.TypeRenewal),
		EmployeeID: "emp1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), request.ProcessRequestRequest{
		RequestID:   created.ID,
		Action:      "escalate",
		ProcessedBy: "admin-1",
	})
	assert.ErrorIs(t, err, request.ErrInvalidAction)
}
