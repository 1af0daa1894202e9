package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, address, phone, owner_id, settings, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&c.OwnerID,
		&c.Settings,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (id, name, address, phone, owner_id, settings, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.Name, c.Address, c.Phone, c.OwnerID, c.Settings).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return c, nil
}

func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

// GetPrimary returns the oldest company record; single-company
// deployments only ever have one.
func (r *companyRepositoryImpl) GetPrimary(ctx context.Context) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at ASC LIMIT 1`
	c, err := scanCompany(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNoPrimaryCompany
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, r.db)

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := current.Address
	if req.Address != nil {
		address = *req.Address
	}
	phone := current.Phone
	if req.Phone != nil {
		phone = req.Phone
	}
	settings := req.ApplySettings(current.Settings)

	query := `
		UPDATE companies
		SET name = $1, address = $2, phone = $3, settings = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, name, address, phone, settings, id)
	if err != nil {
		return fmt.Errorf("failed to update company with id %s: %w", id, err)
	}
	if tag.RowsAffected() != 1 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return company.ErrCompanyNotFound
	}
	return nil
}
