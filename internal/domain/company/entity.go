package company

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ReminderFrequency string

const (
	ReminderDaily   ReminderFrequency = "daily"
	ReminderWeekly  ReminderFrequency = "weekly"
	ReminderMonthly ReminderFrequency = "monthly"
)

// ValidReminderFrequencies lists the accepted reminder_frequency values.
var ValidReminderFrequencies = []string{
	string(ReminderDaily),
	string(ReminderWeekly),
	string(ReminderMonthly),
}

// NotificationSettings drives the contract status engine: the
// "expiring soon" window, the grace period past the end date, and the
// downstream notification channel switches.
type NotificationSettings struct {
	Enabled                  bool              `json:"enabled"`
	ExpiringContractDays     int               `json:"expiring_contract_days"`
	ExpiredContractGraceDays int               `json:"expired_contract_grace_days"`
	ReminderFrequency        ReminderFrequency `json:"reminder_frequency"`
	EmailNotifications       bool              `json:"email_notifications"`
	DashboardNotifications   bool              `json:"dashboard_notifications"`
}

// Settings represents the JSONB settings column. No history is kept
// for settings changes.
type Settings struct {
	ExpiringSoonDays      int                  `json:"expiring_soon_days"`
	AutoRenewal           bool                 `json:"auto_renewal"`
	TerminationNoticeDays int                  `json:"termination_notice_days"`
	ContractNotifications NotificationSettings `json:"contract_notifications"`
}

// Value implements driver.Valuer for database storage
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *Settings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Settings: invalid type")
	}

	return json.Unmarshal(bytes, s)
}

// Company entity. A deployment has a single primary company record
// whose settings feed every reconciliation pass.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     *string
	OwnerID   *string
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}
