package analytics

import (
	"context"
	"time"
)

// AnalyticsRepository - read-only aggregate queries over contracts and
// requests.
type AnalyticsRepository interface {
	// GetContractSummary counts total/active/terminated contracts plus
	// contracts with an end date inside [now, now+expiringWindow].
	GetContractSummary(ctx context.Context, now time.Time, expiringWindow time.Duration) (*ContractSummary, error)

	GetContractsByStatus(ctx context.Context) (map[string]int64, error)
	GetContractsByType(ctx context.Context) (map[string]int64, error)

	// GetMonthlyContracts buckets contracts created in the last twelve
	// months by creation month, ascending.
	GetMonthlyContracts(ctx context.Context, since time.Time) ([]MonthlyCount, error)

	GetRequestSummary(ctx context.Context) (*RequestSummary, error)

	// GetRecentContracts returns contracts created at or after since,
	// newest first.
	GetRecentContracts(ctx context.Context, since time.Time, limit int) ([]ContractActivity, error)

	// GetRecentRequests returns requests created at or after since,
	// newest first by processed-or-created time.
	GetRecentRequests(ctx context.Context, since time.Time, limit int) ([]RequestActivity, error)

	// GetRecentStatusUpdates returns contracts whose status changed at or
	// after since but which were created before it, so creations do not
	// appear twice in the feed.
	GetRecentStatusUpdates(ctx context.Context, since time.Time, limit int) ([]ContractActivity, error)
}
