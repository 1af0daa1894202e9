package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

// contractColumns joins employee name and email for response payloads.
const contractColumns = `
	c.id, c.employee_id, c.company_id, c.type, c.start_date, c.end_date,
	c.status, c.last_status_update, c.created_at, c.updated_at,
	u.name, u.email
`

const contractFrom = `
	FROM contracts c
	JOIN users u ON u.id = c.employee_id
`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.CompanyID,
		&c.Type,
		&c.StartDate,
		&c.EndDate,
		&c.Status,
		&c.LastStatusUpdate,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.EmployeeName,
		&c.EmployeeEmail,
	)
	return c, err
}

func collectContracts(rows pgx.Rows) ([]contract.Contract, error) {
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *contractRepositoryImpl) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (id, employee_id, company_id, type, start_date, end_date, status, last_status_update, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.EmployeeID, c.CompanyID, c.Type, c.StartDate, c.EndDate,
		c.Status, c.LastStatusUpdate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

func (r *contractRepositoryImpl) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + ` WHERE c.id = $1`
	c, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, err
	}
	return c, nil
}

func (r *contractRepositoryImpl) List(ctx context.Context) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+contractColumns+contractFrom+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + ` WHERE c.employee_id = $1 ORDER BY c.created_at DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) Update(ctx context.Context, upd contract.ContractUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET type = $1, start_date = $2, end_date = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, upd.Type, upd.StartDate, upd.EndDate, upd.ID)
	if err != nil {
		return fmt.Errorf("failed to update contract with id %s: %w", upd.ID, err)
	}
	if tag.RowsAffected() != 1 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) GetReconcilable(ctx context.Context) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + ` WHERE c.status != $1 ORDER BY c.created_at ASC`
	rows, err := q.Query(ctx, query, contract.StatusTerminated)
	if err != nil {
		return nil, err
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) ApplyStatusMutations(ctx context.Context, mutations []contract.StatusMutation) error {
	if len(mutations) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for _, m := range mutations {
		batch.Queue(
			`UPDATE contracts SET status = $1, last_status_update = $2, updated_at = NOW() WHERE id = $3`,
			m.Status, m.UpdatedAt, m.ContractID,
		)
		batch.Queue(
			`INSERT INTO contract_status_history (id, contract_id, status, previous_status, reason, updated_by, updated_at)
			 VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)`,
			m.History.ContractID, m.History.Status, m.History.PreviousStatus,
			m.History.Reason, m.History.UpdatedBy, m.History.UpdatedAt,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to apply status mutation batch: %w", err)
		}
	}
	return nil
}

func (r *contractRepositoryImpl) UpdateStatus(ctx context.Context, id string, status contract.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET status = $1, last_status_update = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) AppendStatusHistory(ctx context.Context, entry contract.StatusHistoryEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_status_history (id, contract_id, status, previous_status, reason, updated_by, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query,
		entry.ContractID, entry.Status, entry.PreviousStatus,
		entry.Reason, entry.UpdatedBy, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

func (r *contractRepositoryImpl) GetStatusHistory(ctx context.Context, contractID string) ([]contract.StatusHistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, status, previous_status, reason, updated_by, updated_at
		FROM contract_status_history
		WHERE contract_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []contract.StatusHistoryEntry
	for rows.Next() {
		var e contract.StatusHistoryEntry
		if err := rows.Scan(&e.ID, &e.ContractID, &e.Status, &e.PreviousStatus, &e.Reason, &e.UpdatedBy, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *contractRepositoryImpl) GetExpiring(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + `
		WHERE c.status IN ($1, $2)
		  AND c.end_date IS NOT NULL
		  AND c.end_date BETWEEN $3 AND $4
		ORDER BY c.end_date ASC`
	rows, err := q.Query(ctx, query, contract.StatusActive, contract.StatusExpiringSoon, from, to)
	if err != nil {
		return nil, err
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) GetExpired(ctx context.Context, now time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + `
		WHERE c.status = $1
		  AND c.end_date IS NOT NULL
		  AND c.end_date < $2
		ORDER BY c.end_date DESC`
	rows, err := q.Query(ctx, query, contract.StatusExpired, now)
	if err != nil {
		return nil, err
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) AddDocument(ctx context.Context, doc contract.Document) (contract.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_documents (id, contract_id, file_name, file_url, upload_date)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, upload_date
	`
	err := q.QueryRow(ctx, query, doc.ContractID, doc.FileName, doc.FileURL).
		Scan(&doc.ID, &doc.UploadDate)
	if err != nil {
		return contract.Document{}, fmt.Errorf("failed to add contract document: %w", err)
	}
	return doc, nil
}

func (r *contractRepositoryImpl) GetDocuments(ctx context.Context, contractID string) ([]contract.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, file_name, file_url, upload_date
		FROM contract_documents
		WHERE contract_id = $1
		ORDER BY upload_date DESC
	`
	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []contract.Document
	for rows.Next() {
		var d contract.Document
		if err := rows.Scan(&d.ID, &d.ContractID, &d.FileName, &d.FileURL, &d.UploadDate); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *contractRepositoryImpl) RemoveDocument(ctx context.Context, contractID, documentID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM contract_documents WHERE id = $1 AND contract_id = $2`, documentID, contractID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return contract.ErrDocumentNotFound
	}
	return nil
}
