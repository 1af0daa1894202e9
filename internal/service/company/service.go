package company

import (
	"context"
	"fmt"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/fixtures"
)

// Service handles company records and their notification settings.
type Service struct {
	company.CompanyRepository
}

func NewService(companyRepository company.CompanyRepository) *Service {
	return &Service{CompanyRepository: companyRepository}
}

func (s *Service) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	newCompany := company.Company{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		OwnerID:  req.OwnerID,
		Settings: fixtures.DefaultSettings(),
	}

	created, err := s.CompanyRepository.Create(ctx, newCompany)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (company.Company, error) {
	return s.CompanyRepository.GetByID(ctx, id)
}

// GetPrimary returns the deployment's primary company record.
func (s *Service) GetPrimary(ctx context.Context) (company.Company, error) {
	return s.CompanyRepository.GetPrimary(ctx)
}

func (s *Service) List(ctx context.Context) ([]company.Company, error) {
	return s.CompanyRepository.List(ctx)
}

func (s *Service) Update(ctx context.Context, req company.UpdateCompanyRequest) (company.Company, error) {
	if err := s.CompanyRepository.Update(ctx, req.ID, req); err != nil {
		return company.Company{}, err
	}
	return s.CompanyRepository.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.CompanyRepository.Delete(ctx, id)
}
