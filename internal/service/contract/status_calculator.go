package contract

import (
	"time"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
)

// DaysUntilEnd returns the number of days from now until end, rounded
// up. A contract ending later today counts as 1; one that ended
// earlier today counts as 0.
func DaysUntilEnd(now, end time.Time) int {
	diff := end.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// CalculateStatus derives the status of a contract from its dates and
// the company notification settings. Pure function of its inputs; the
// caller supplies the clock.
//
// The grace comparison is strict: a contract exactly
// ExpiredContractGraceDays past its end date is not yet Expired. The
// expiring window is inclusive.
func CalculateStatus(now time.Time, startDate time.Time, endDate *time.Time, settings company.NotificationSettings) contract.Status {
	if startDate.After(now) {
		return contract.StatusPending
	}

	if endDate == nil {
		return contract.StatusActive
	}

	diffDays := DaysUntilEnd(now, *endDate)

	if diffDays < -settings.ExpiredContractGraceDays {
		return contract.StatusExpired
	}

	if diffDays <= settings.ExpiringContractDays {
		return contract.StatusExpiringSoon
	}

	return contract.StatusActive
}
