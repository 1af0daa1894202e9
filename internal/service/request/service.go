package request

import (
	"context"
	"fmt"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
	"github.com/contracthq/contracts-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// Service handles the employee request workflow: creation by the
// contract owner, approval or rejection by an admin.
type Service struct {
	request.RequestRepository
	contract.ContractRepository
	withTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
	now    func() time.Time
}

func NewService(db *database.DB, requestRepository request.RequestRepository, contractRepository contract.ContractRepository) *Service {
	return &Service{
		RequestRepository:  requestRepository,
		ContractRepository: contractRepository,
		withTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		now: time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req request.CreateRequestRequest) (request.Request, error) {
	c, err := s.ContractRepository.GetByID(ctx, req.ContractID)
	if err != nil {
		return request.Request{}, err
	}

	if c.EmployeeID != req.EmployeeID {
		return request.Request{}, contract.ErrNotContractOwner
	}

	hasPending, err := s.RequestRepository.HasPendingForContract(ctx, req.ContractID)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if hasPending {
		return request.Request{}, request.ErrPendingRequestExists
	}

	reason := req.Reason
	if reason == "" {
		reason = fmt.Sprintf("%s requested by employee", req.Type)
	}

	var requestedStatus *contract.Status
	if req.RequestedStatus != nil {
		status := contract.Status(*req.RequestedStatus)
		requestedStatus = &status
	}

	newRequest := request.Request{
		EmployeeID:      req.EmployeeID,
		ContractID:      req.ContractID,
		Type:            request.RequestType(req.Type),
		CurrentStatus:   c.Status,
		RequestedStatus: requestedStatus,
		Reason:          reason,
		Status:          request.StatusPending,
	}

	created, err := s.RequestRepository.Create(ctx, newRequest)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (request.Request, error) {
	return s.RequestRepository.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]request.Request, error) {
	return s.RequestRepository.ListAll(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]request.Request, error) {
	return s.RequestRepository.ListByEmployee(ctx, employeeID)
}

// Process resolves a pending request. Approval writes the request
// transition, the contract status and the history entry in one
// transaction; a failure anywhere leaves all three untouched.
func (s *Service) Process(ctx context.Context, req request.ProcessRequestRequest) (request.Request, error) {
	pending, err := s.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return request.Request{}, err
	}
	if !pending.IsPending() {
		return request.Request{}, request.ErrAlreadyProcessed
	}

	switch request.ProcessAction(req.Action) {
	case request.ActionApprove:
		err = s.approve(ctx, pending, req)
	case request.ActionReject:
		err = s.reject(ctx, pending, req)
	default:
		return request.Request{}, request.ErrInvalidAction
	}
	if err != nil {
		return request.Request{}, err
	}

	return s.RequestRepository.GetByID(ctx, req.RequestID)
}

func (s *Service) approve(ctx context.Context, pending request.Request, req request.ProcessRequestRequest) error {
	newStatus, err := pending.TargetContractStatus()
	if err != nil {
		return err
	}

	c, err := s.ContractRepository.GetByID(ctx, pending.ContractID)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("%s approved by admin", pending.Type)
	if req.AdminNotes != "" {
		reason = fmt.Sprintf("%s: %s", reason, req.AdminNotes)
	}

	updatedBy := req.ProcessedBy
	if req.ProcessorName != "" {
		updatedBy = req.ProcessorName
	}

	now := s.now()
	return s.withTx(ctx, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if err := s.RequestRepository.MarkProcessed(txCtx, request.MarkProcessedRequest{
			ID:          pending.ID,
			Status:      request.StatusApproved,
			ProcessedBy: req.ProcessedBy,
			AdminNotes:  notesOrNil(req.AdminNotes),
		}); err != nil {
			return err
		}

		if err := s.ContractRepository.UpdateStatus(txCtx, c.ID, newStatus, now); err != nil {
			return fmt.Errorf("failed to update contract status: %w", err)
		}

		return s.ContractRepository.AppendStatusHistory(txCtx, contract.StatusHistoryEntry{
			ContractID:     c.ID,
			Status:         newStatus,
			PreviousStatus: c.Status,
			Reason:         reason,
			UpdatedBy:      updatedBy,
			UpdatedAt:      now,
		})
	})
}

// reject is a request transition only; the contract is untouched.
func (s *Service) reject(ctx context.Context, pending request.Request, req request.ProcessRequestRequest) error {
	return s.RequestRepository.MarkProcessed(ctx, request.MarkProcessedRequest{
		ID:          pending.ID,
		Status:      request.StatusRejected,
		ProcessedBy: req.ProcessedBy,
		AdminNotes:  notesOrNil(req.AdminNotes),
	})
}

func notesOrNil(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
