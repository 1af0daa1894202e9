package company

import (
	"context"
)

// CompanyRepository - interface for the companies table.
type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)

	// GetPrimary returns the single company record of this deployment.
	// Returns ErrNoPrimaryCompany when none has been created.
	GetPrimary(ctx context.Context) (Company, error)

	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error
	Delete(ctx context.Context, id string) error
}
