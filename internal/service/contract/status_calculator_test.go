package contract

import (
	"testing"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func settings(expiringDays, graceDays int) company.NotificationSettings {
	return company.NotificationSettings{
		Enabled:                  true,
		ExpiringContractDays:     expiringDays,
		ExpiredContractGraceDays: graceDays,
	}
}

func TestCalculateStatus(t *testing.T) {
	now := day("2025-06-15")

	cases := []struct {
		name      string
		start     time.Time
		end       *time.Time
		expiring  int
		grace     int
		want      contract.Status
	}{
		{
			name:  "start date in the future is pending",
			start: day("2025-07-01"),
			end:   dayPtr("2026-07-01"),
			expiring: 30, grace: 0,
			want: contract.StatusPending,
		},
		{
			name:  "no end date is active",
			start: day("2024-01-01"),
			end:   nil,
			expiring: 30, grace: 0,
			want: contract.StatusActive,
		},
		{
			name:  "end far in the future is active",
			start: day("2024-01-01"),
			end:   dayPtr("2026-06-15"),
			expiring: 30, grace: 0,
			want: contract.StatusActive,
		},
		{
			name:  "end inside the expiring window",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-30"),
			expiring: 30, grace: 0,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "end exactly at the window boundary is expiring",
			start: day("2024-01-01"),
			end:   dayPtr("2025-07-15"), // 30 days out
			expiring: 30, grace: 0,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "end one day past the window is active",
			start: day("2024-01-01"),
			end:   dayPtr("2025-07-16"), // 31 days out
			expiring: 30, grace: 0,
			want: contract.StatusActive,
		},
		{
			name:  "wider window captures a later end date",
			start: day("2024-01-01"),
			end:   dayPtr("2025-07-25"), // 40 days out, active under the default 30
			expiring: 45, grace: 0,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "past end with no grace is expired",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-14"),
			expiring: 30, grace: 0,
			want: contract.StatusExpired,
		},
		{
			name:  "inside the grace period stays expiring",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-10"), // 5 days past
			expiring: 30, grace: 7,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "exactly at the grace boundary is not yet expired",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-08"), // 7 days past
			expiring: 30, grace: 7,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "one day past the grace boundary is expired",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-07"), // 8 days past
			expiring: 30, grace: 7,
			want: contract.StatusExpired,
		},
		{
			name:  "end today is expiring",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-15"),
			expiring: 30, grace: 0,
			want: contract.StatusExpiringSoon,
		},
		{
			name:  "zero-day window keeps future end active",
			start: day("2024-01-01"),
			end:   dayPtr("2025-06-20"),
			expiring: 0, grace: 0,
			want: contract.StatusActive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateStatus(now, tc.start, tc.end, settings(tc.expiring, tc.grace))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateStatusPartialDaysRoundUp(t *testing.T) {
	// 12 hours before the end still counts as one remaining day.
	now := day("2025-06-15").Add(12 * time.Hour)
	end := day("2025-06-16")

	got := CalculateStatus(now, day("2024-01-01"), &end, settings(0, 0))
	assert.Equal(t, contract.StatusActive, got)

	got = CalculateStatus(now, day("2024-01-01"), &end, settings(1, 0))
	assert.Equal(t, contract.StatusExpiringSoon, got)
}

func TestDaysUntilEnd(t *testing.T) {
	now := day("2025-06-15")

	assert.Equal(t, 0, DaysUntilEnd(now, day("2025-06-15")))
	assert.Equal(t, 1, DaysUntilEnd(now, day("2025-06-16")))
	assert.Equal(t, -1, DaysUntilEnd(now, day("2025-06-14")))
	assert.Equal(t, 30, DaysUntilEnd(now, day("2025-07-15")))

	// Partial days round toward the end date.
	assert.Equal(t, 1, DaysUntilEnd(now.Add(12*time.Hour), day("2025-06-16")))
	assert.Equal(t, 0, DaysUntilEnd(now.Add(12*time.Hour), day("2025-06-15")))
}
