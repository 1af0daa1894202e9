package fixtures

import (
	"github.com/contracthq/contracts-backend-go/internal/domain/company"
)

// DefaultSettings returns the settings seeded into a newly created
// company record.
func DefaultSettings() company.Settings {
	return company.Settings{
		ExpiringSoonDays:      30,
		AutoRenewal:           true,
		TerminationNoticeDays: 60,
		ContractNotifications: DefaultNotificationSettings(),
	}
}

// DefaultNotificationSettings returns the contract notification
// defaults: 30-day expiring window, 7-day grace, weekly reminders.
func DefaultNotificationSettings() company.NotificationSettings {
	return company.NotificationSettings{
		Enabled:                  true,
		ExpiringContractDays:     30,
		ExpiredContractGraceDays: 7,
		ReminderFrequency:        company.ReminderWeekly,
		EmailNotifications:       true,
		DashboardNotifications:   true,
	}
}

// FallbackNotificationSettings is used by the reconciliation job when
// no company record exists yet: 30-day window, no grace.
func FallbackNotificationSettings() company.NotificationSettings {
	return company.NotificationSettings{
		Enabled:                  true,
		ExpiringContractDays:     30,
		ExpiredContractGraceDays: 0,
		ReminderFrequency:        company.ReminderWeekly,
		EmailNotifications:       false,
		DashboardNotifications:   true,
	}
}
