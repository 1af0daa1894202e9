package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
)

// Service handles contract CRUD and document attachments.
type Service struct {
	contract.ContractRepository
	company.CompanyRepository
	user.UserRepository
	now Clock
}

func NewService(contractRepository contract.ContractRepository, companyRepository company.CompanyRepository, userRepository user.UserRepository) *Service {
	return &Service{
		ContractRepository: contractRepository,
		CompanyRepository:  companyRepository,
		UserRepository:     userRepository,
		now:                time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req contract.CreateContractRequest) (contract.Contract, error) {
	if _, err := s.UserRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return contract.Contract{}, contract.ErrEmployeeNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	if req.CompanyID != nil {
		if _, err := s.CompanyRepository.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, company.ErrCompanyNotFound) {
				return contract.Contract{}, contract.ErrCompanyNotFound
			}
			return contract.Contract{}, fmt.Errorf("failed to look up company: %w", err)
		}
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return contract.Contract{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		if parsed.Before(startDate) {
			return contract.Contract{}, contract.ErrEndBeforeStart
		}
		endDate = &parsed
	}

	contractType := contract.Type(req.Type)
	if endDate == nil && contractType != contract.TypeCDI {
		return contract.Contract{}, contract.ErrEndDateRequired
	}

	settings, err := s.creationSettings(ctx)
	if err != nil {
		return contract.Contract{}, err
	}

	now := s.now()
	newContract := contract.Contract{
		EmployeeID:       req.EmployeeID,
		CompanyID:        req.CompanyID,
		Type:             contractType,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           CalculateStatus(now, startDate, endDate, settings),
		LastStatusUpdate: &now,
	}

	created, err := s.ContractRepository.Create(ctx, newContract)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return created, nil
}

func (s *Service) creationSettings(ctx context.Context) (company.NotificationSettings, error) {
	statusSvc := StatusService{CompanyRepository: s.CompanyRepository}
	return statusSvc.notificationSettings(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	return s.ContractRepository.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]contract.Contract, error) {
	return s.ContractRepository.List(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	return s.ContractRepository.ListByEmployee(ctx, employeeID)
}

// Update changes dates or type. The service resolves the request
// against the current row and hands the repository fully typed values.
// The status is left to the next reconciliation pass, which records the
// transition with its reason.
func (s *Service) Update(ctx context.Context, req contract.UpdateContractRequest) (contract.Contract, error) {
	current, err := s.ContractRepository.GetByID(ctx, req.ID)
	if err != nil {
		return contract.Contract{}, err
	}

	upd := contract.ContractUpdate{
		ID:        current.ID,
		Type:      current.Type,
		StartDate: current.StartDate,
		EndDate:   current.EndDate,
	}
	if req.Type != nil {
		upd.Type = contract.Type(*req.Type)
	}
	if req.StartDate != nil {
		upd.StartDate, err = time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return contract.Contract{}, fmt.Errorf("failed to parse start date: %w", err)
		}
	}
	if req.ClearEndDate {
		upd.EndDate = nil
	} else if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return contract.Contract{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		upd.EndDate = &endDate
	}
	if upd.EndDate != nil && upd.EndDate.Before(upd.StartDate) {
		return contract.Contract{}, contract.ErrEndBeforeStart
	}

	if err := s.ContractRepository.Update(ctx, upd); err != nil {
		return contract.Contract{}, err
	}
	return s.ContractRepository.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.ContractRepository.Delete(ctx, id)
}

func (s *Service) GetStatusHistory(ctx context.Context, contractID string) ([]contract.StatusHistoryEntry, error) {
	if _, err := s.ContractRepository.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.ContractRepository.GetStatusHistory(ctx, contractID)
}

func (s *Service) AddDocument(ctx context.Context, req contract.AddDocumentRequest) (contract.Document, error) {
	if _, err := s.ContractRepository.GetByID(ctx, req.ContractID); err != nil {
		return contract.Document{}, err
	}

	doc := contract.Document{
		ContractID: req.ContractID,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
	}
	return s.ContractRepository.AddDocument(ctx, doc)
}

func (s *Service) GetDocuments(ctx context.Context, contractID string) ([]contract.Document, error) {
	if _, err := s.ContractRepository.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.ContractRepository.GetDocuments(ctx, contractID)
}

func (s *Service) RemoveDocument(ctx context.Context, contractID, documentID string) error {
	if _, err := s.ContractRepository.GetByID(ctx, contractID); err != nil {
		return err
	}
	return s.ContractRepository.RemoveDocument(ctx, contractID, documentID)
}
