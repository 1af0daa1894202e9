package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestApplySettingsMergesOnlyProvidedFields(t *testing.T) {
	current := Settings{
		ExpiringSoonDays:      30,
		AutoRenewal:           true,
		TerminationNoticeDays: 60,
		ContractNotifications: NotificationSettings{
			Enabled:                  true,
			ExpiringContractDays:     30,
			ExpiredContractGraceDays: 7,
			ReminderFrequency:        ReminderWeekly,
			EmailNotifications:       true,
			DashboardNotifications:   true,
		},
	}

	req := UpdateCompanyRequest{
		ID: "c1",
		ContractNotifications: &UpdateNotificationSettingsRequest{
			ExpiringContractDays: intPtr(14),
			EmailNotifications:   boolPtr(false),
		},
	}

	merged := req.ApplySettings(current)

	assert.Equal(t, 14, merged.ContractNotifications.ExpiringContractDays)
	assert.False(t, merged.ContractNotifications.EmailNotifications)

	// Untouched fields keep their values.
	assert.Equal(t, 7, merged.ContractNotifications.ExpiredContractGraceDays)
	assert.Equal(t, ReminderWeekly, merged.ContractNotifications.ReminderFrequency)
	assert.Equal(t, 30, merged.ExpiringSoonDays)
	assert.True(t, merged.AutoRenewal)
}

func TestApplySettingsWithoutNotificationBlock(t *testing.T) {
	current := Settings{
		ExpiringSoonDays: 30,
		ContractNotifications: NotificationSettings{
			ExpiringContractDays: 30,
		},
	}

	req := UpdateCompanyRequest{ID: "c1", ExpiringSoonDays: intPtr(45)}
	merged := req.ApplySettings(current)

	assert.Equal(t, 45, merged.ExpiringSoonDays)
	assert.Equal(t, 30, merged.ContractNotifications.ExpiringContractDays)
}

func TestUpdateCompanyRequestValidate(t *testing.T) {
	t.Run("id is required", func(t *testing.T) {
		req := UpdateCompanyRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("negative window days are rejected", func(t *testing.T) {
		req := UpdateCompanyRequest{
			ID: "c1",
			ContractNotifications: &UpdateNotificationSettingsRequest{
				ExpiringContractDays: intPtr(-1),
			},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("unknown reminder frequency is rejected", func(t *testing.T) {
		req := UpdateCompanyRequest{
			ID: "c1",
			ContractNotifications: &UpdateNotificationSettingsRequest{
				ReminderFrequency: strPtr("hourly"),
			},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("valid partial update passes", func(t *testing.T) {
		req := UpdateCompanyRequest{
			ID: "c1",
			ContractNotifications: &UpdateNotificationSettingsRequest{
				ExpiringContractDays: intPtr(14),
				ReminderFrequency:    strPtr("daily"),
			},
		}
		require.NoError(t, req.Validate())
	})
}
