package contract

import (
	"time"

	"github.com/contracthq/contracts-backend-go/internal/pkg/validator"
)

type CreateContractRequest struct {
	EmployeeID string  `json:"employee_id"`
	CompanyID  *string `json:"company_id,omitempty"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of CDD, CDI, Internship, Terminated",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateContractRequest struct {
	ID        string  `json:"contract_id"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	// ClearEndDate converts a fixed-term contract to a permanent one.
	ClearEndDate bool `json:"clear_end_date,omitempty"`
}

func (r *UpdateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "contract_id",
			Message: "contract_id is required",
		})
	}

	if r.Type != nil && !validator.IsInSlice(*r.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of CDD, CDI, Internship, Terminated",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		if r.ClearEndDate {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date and clear_end_date are mutually exclusive",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ContractUpdate carries fully resolved update values to the
// repository. The service parses and validates the request strings; the
// repository only writes.
type ContractUpdate struct {
	ID        string
	Type      Type
	StartDate time.Time
	EndDate   *time.Time
}

type AddDocumentRequest struct {
	ContractID string
	FileName   string
	FileURL    string
}

// ContractResponse is the JSON shape returned by contract endpoints.
type ContractResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name,omitempty"`
	EmployeeEmail    *string    `json:"employee_email,omitempty"`
	CompanyID        *string    `json:"company_id,omitempty"`
	Type             Type       `json:"type"`
	StartDate        string     `json:"start_date"`
	EndDate          *string    `json:"end_date,omitempty"`
	Status           Status     `json:"status"`
	LastStatusUpdate *time.Time `json:"last_status_update,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		EmployeeName:     c.EmployeeName,
		EmployeeEmail:    c.EmployeeEmail,
		CompanyID:        c.CompanyID,
		Type:             c.Type,
		StartDate:        c.StartDate.Format("2006-01-02"),
		Status:           c.Status,
		LastStatusUpdate: c.LastStatusUpdate,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.EndDate != nil {
		end := c.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func ToResponses(contracts []Contract) []ContractResponse {
	responses := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, ToResponse(c))
	}
	return responses
}
