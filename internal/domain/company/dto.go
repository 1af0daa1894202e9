package company

import (
	"github.com/contracthq/contracts-backend-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`
	OwnerID *string `json:"owner_id,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateNotificationSettingsRequest struct {
	Enabled                  *bool   `json:"enabled,omitempty"`
	ExpiringContractDays     *int    `json:"expiring_contract_days,omitempty"`
	ExpiredContractGraceDays *int    `json:"expired_contract_grace_days,omitempty"`
	ReminderFrequency        *string `json:"reminder_frequency,omitempty"`
	EmailNotifications       *bool   `json:"email_notifications,omitempty"`
	DashboardNotifications   *bool   `json:"dashboard_notifications,omitempty"`
}

type UpdateCompanyRequest struct {
	ID                    string                             `json:"company_id"`
	Name                  *string                            `json:"name,omitempty"`
	Address               *string                            `json:"address,omitempty"`
	Phone                 *string                            `json:"phone,omitempty"`
	ExpiringSoonDays      *int                               `json:"expiring_soon_days,omitempty"`
	AutoRenewal           *bool                              `json:"auto_renewal,omitempty"`
	TerminationNoticeDays *int                               `json:"termination_notice_days,omitempty"`
	ContractNotifications *UpdateNotificationSettingsRequest `json:"contract_notifications,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.ContractNotifications != nil {
		n := r.ContractNotifications
		if n.ExpiringContractDays != nil && *n.ExpiringContractDays < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "expiring_contract_days",
				Message: "expiring_contract_days must not be negative",
			})
		}
		if n.ExpiredContractGraceDays != nil && *n.ExpiredContractGraceDays < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "expired_contract_grace_days",
				Message: "expired_contract_grace_days must not be negative",
			})
		}
		if n.ReminderFrequency != nil && !validator.IsInSlice(*n.ReminderFrequency, ValidReminderFrequencies) {
			errs = append(errs, validator.ValidationError{
				Field:   "reminder_frequency",
				Message: "reminder_frequency must be daily, weekly or monthly",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApplySettings merges the update request into existing settings.
func (r *UpdateCompanyRequest) ApplySettings(s Settings) Settings {
	if r.ExpiringSoonDays != nil {
		s.ExpiringSoonDays = *r.ExpiringSoonDays
	}
	if r.AutoRenewal != nil {
		s.AutoRenewal = *r.AutoRenewal
	}
	if r.TerminationNoticeDays != nil {
		s.TerminationNoticeDays = *r.TerminationNoticeDays
	}
	if n := r.ContractNotifications; n != nil {
		if n.Enabled != nil {
			s.ContractNotifications.Enabled = *n.Enabled
		}
		if n.ExpiringContractDays != nil {
			s.ContractNotifications.ExpiringContractDays = *n.ExpiringContractDays
		}
		if n.ExpiredContractGraceDays != nil {
			s.ContractNotifications.ExpiredContractGraceDays = *n.ExpiredContractGraceDays
		}
		if n.ReminderFrequency != nil {
			s.ContractNotifications.ReminderFrequency = ReminderFrequency(*n.ReminderFrequency)
		}
		if n.EmailNotifications != nil {
			s.ContractNotifications.EmailNotifications = *n.EmailNotifications
		}
		if n.DashboardNotifications != nil {
			s.ContractNotifications.DashboardNotifications = *n.DashboardNotifications
		}
	}
	return s
}
