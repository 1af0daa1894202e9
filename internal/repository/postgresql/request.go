package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `
	r.id, r.employee_id, r.contract_id, r.type, r.current_status, r.requested_status,
	r.reason, r.status, r.admin_notes, r.processed_by, r.processed_at,
	r.created_at, r.updated_at,
	u.name, u.email, c.type, p.name
`

const requestFrom = `
	FROM requests r
	JOIN users u ON u.id = r.employee_id
	JOIN contracts c ON c.id = r.contract_id
	LEFT JOIN users p ON p.id = r.processed_by
`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.ContractID,
		&req.Type,
		&req.CurrentStatus,
		&req.RequestedStatus,
		&req.Reason,
		&req.Status,
		&req.AdminNotes,
		&req.ProcessedBy,
		&req.ProcessedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.EmployeeName,
		&req.EmployeeEmail,
		&req.ContractType,
		&req.ProcessorName,
	)
	return req, err
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (id, employee_id, contract_id, type, current_status, requested_status, reason, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.ContractID, req.Type,
		req.CurrentStatus, req.RequestedStatus, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + requestFrom + ` WHERE r.id = $1`
	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) ListAll(ctx context.Context) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+requestColumns+requestFrom+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *requestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + requestFrom + ` WHERE r.employee_id = $1 ORDER BY r.created_at DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *requestRepositoryImpl) HasPendingForContract(ctx context.Context, contractID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM requests WHERE contract_id = $1 AND status = $2)`,
		contractID, request.StatusPending,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *requestRepositoryImpl) MarkProcessed(ctx context.Context, req request.MarkProcessedRequest) error {
	q := GetQuerier(ctx, r.db)

	// The status guard keeps terminal requests immutable even under
	// concurrent approvals.
	query := `
		UPDATE requests
		SET status = $1, processed_by = $2, admin_notes = $3, processed_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, req.Status, req.ProcessedBy, req.AdminNotes, req.ID, request.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to process request with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() != 1 {
		return request.ErrAlreadyProcessed
	}
	return nil
}
