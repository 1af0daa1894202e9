package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	companysvc "github.com/contracthq/contracts-backend-go/internal/service/company"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService *companysvc.Service
}

func NewCompanyHandler(companyService *companysvc.Service) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

type companyResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Phone    *string          `json:"phone,omitempty"`
	OwnerID  *string          `json:"owner_id,omitempty"`
	Settings company.Settings `json:"settings"`
}

func toCompanyResponse(c company.Company) companyResponse {
	return companyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Address:  c.Address,
		Phone:    c.Phone,
		OwnerID:  c.OwnerID,
		Settings: c.Settings,
	}
}

// Create implements CompanyHandler.
func (h *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.companyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", toCompanyResponse(created))
}

// Get implements CompanyHandler. Returns the primary company record;
// ?all=true lists every record.
func (h *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		companies, err := h.companyService.List(r.Context())
		if err != nil {
			slog.Error("List companies service error", "error", err)
			response.HandleError(w, err)
			return
		}

		responses := make([]companyResponse, 0, len(companies))
		for _, c := range companies {
			responses = append(responses, toCompanyResponse(c))
		}
		response.Success(w, responses)
		return
	}

	primary, err := h.companyService.GetPrimary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toCompanyResponse(primary))
}

// Update implements CompanyHandler.
func (h *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.companyService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", toCompanyResponse(updated))
}

// Delete implements CompanyHandler.
func (h *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var deleteReq struct {
		ID string `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil || deleteReq.ID == "" {
		response.BadRequest(w, "company_id is required", nil)
		return
	}

	if err := h.companyService.Delete(r.Context(), deleteReq.ID); err != nil {
		slog.Error("Delete company service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company deleted successfully", nil)
}
