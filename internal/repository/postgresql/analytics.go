package postgresql

import (
	"context"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/analytics"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

func (r *analyticsRepositoryImpl) GetContractSummary(ctx context.Context, now time.Time, expiringWindow time.Duration) (*analytics.ContractSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status IN ($1, $2) AND end_date IS NOT NULL AND end_date BETWEEN $3 AND $4),
			COUNT(*) FILTER (WHERE status = $5)
		FROM contracts
	`

	var summary analytics.ContractSummary
	err := q.QueryRow(ctx, query,
		contract.StatusActive, contract.StatusExpiringSoon,
		now, now.Add(expiringWindow),
		contract.StatusTerminated,
	).Scan(&summary.Total, &summary.Active, &summary.Expiring, &summary.Terminated)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *analyticsRepositoryImpl) GetContractsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, `SELECT status, COUNT(*) FROM contracts GROUP BY status`)
}

func (r *analyticsRepositoryImpl) GetContractsByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, `SELECT type, COUNT(*) FROM contracts GROUP BY type`)
}

func (r *analyticsRepositoryImpl) countGrouped(ctx context.Context, query string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *analyticsRepositoryImpl) GetMonthlyContracts(ctx context.Context, since time.Time) ([]analytics.MonthlyCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int,
		       EXTRACT(MONTH FROM created_at)::int,
		       COUNT(*)
		FROM contracts
		WHERE created_at >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []analytics.MonthlyCount
	for rows.Next() {
		var mc analytics.MonthlyCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

func (r *analyticsRepositoryImpl) GetRecentContracts(ctx context.Context, since time.Time, limit int) ([]analytics.ContractActivity, error) {
	query := `
		SELECT c.id, c.type, c.status, u.name, c.created_at, c.last_status_update
		FROM contracts c
		LEFT JOIN users u ON u.id = c.employee_id
		WHERE c.created_at >= $1
		ORDER BY c.created_at DESC
		LIMIT $2
	`
	return r.collectContractActivity(ctx, query, since, limit)
}

func (r *analyticsRepositoryImpl) GetRecentStatusUpdates(ctx context.Context, since time.Time, limit int) ([]analytics.ContractActivity, error) {
	query := `
		SELECT c.id, c.type, c.status, u.name, c.created_at, c.last_status_update
		FROM contracts c
		LEFT JOIN users u ON u.id = c.employee_id
		WHERE c.last_status_update >= $1 AND c.created_at < $1
		ORDER BY c.last_status_update DESC
		LIMIT $2
	`
	return r.collectContractActivity(ctx, query, since, limit)
}

func (r *analyticsRepositoryImpl) collectContractActivity(ctx context.Context, query string, since time.Time, limit int) ([]analytics.ContractActivity, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []analytics.ContractActivity
	for rows.Next() {
		var a analytics.ContractActivity
		if err := rows.Scan(&a.ContractID, &a.ContractType, &a.Status, &a.EmployeeName, &a.CreatedAt, &a.LastStatusUpdate); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *analyticsRepositoryImpl) GetRecentRequests(ctx context.Context, since time.Time, limit int) ([]analytics.RequestActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.type, r.status, u.name, r.created_at, r.processed_at
		FROM requests r
		LEFT JOIN users u ON u.id = r.employee_id
		WHERE r.created_at >= $1 OR r.processed_at >= $1
		ORDER BY COALESCE(r.processed_at, r.created_at) DESC
		LIMIT $2
	`
	rows, err := q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []analytics.RequestActivity
	for rows.Next() {
		var a analytics.RequestActivity
		if err := rows.Scan(&a.RequestID, &a.RequestType, &a.Status, &a.EmployeeName, &a.CreatedAt, &a.ProcessedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *analyticsRepositoryImpl) GetRequestSummary(ctx context.Context) (*analytics.RequestSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM requests
	`

	var summary analytics.RequestSummary
	err := q.QueryRow(ctx, query,
		request.StatusPending, request.StatusApproved, request.StatusRejected,
	).Scan(&summary.Total, &summary.Pending, &summary.Approved, &summary.Rejected)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
