package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/middleware"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	requestsvc "github.com/contracthq/contracts-backend-go/internal/service/request"
)

type RequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService *requestsvc.Service
}

func NewRequestHandler(requestService *requestsvc.Service) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

type requestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	EmployeeEmail   *string `json:"employee_email,omitempty"`
	ContractID      string  `json:"contract_id"`
	ContractType    *string `json:"contract_type,omitempty"`
	Type            string  `json:"type"`
	CurrentStatus   string  `json:"current_status"`
	RequestedStatus *string `json:"requested_status,omitempty"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
	ProcessedBy     *string `json:"processed_by,omitempty"`
	ProcessorName   *string `json:"processor_name,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toRequestResponse(req request.Request) requestResponse {
	resp := requestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		ContractID:    req.ContractID,
		Type:          string(req.Type),
		CurrentStatus: string(req.CurrentStatus),
		Reason:        req.Reason,
		Status:        string(req.Status),
		AdminNotes:    req.AdminNotes,
		ProcessedBy:   req.ProcessedBy,
		ProcessorName: req.ProcessorName,
		CreatedAt:     req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if req.ContractType != nil {
		contractType := string(*req.ContractType)
		resp.ContractType = &contractType
	}
	if req.RequestedStatus != nil {
		requestedStatus := string(*req.RequestedStatus)
		resp.RequestedStatus = &requestedStatus
	}
	if req.ProcessedAt != nil {
		processedAt := req.ProcessedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ProcessedAt = &processedAt
	}
	return resp
}

func toRequestResponses(requests []request.Request) []requestResponse {
	responses := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toRequestResponse(req))
	}
	return responses
}

// Create implements RequestHandler.
func (h *RequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq request.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.EmployeeID = identity.UserID

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.requestService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted successfully", toRequestResponse(created))
}

// ListMy implements RequestHandler.
func (h *RequestHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.requestService.ListByEmployee(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("List own requests service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, toRequestResponses(requests))
}

// ListAll implements RequestHandler. Admin view.
func (h *RequestHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListAll(r.Context())
	if err != nil {
		slog.Error("List requests service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, toRequestResponses(requests))
}

// Process implements RequestHandler. Admin approval or rejection.
func (h *RequestHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var processReq request.ProcessRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&processReq); err != nil {
		slog.Error("Process request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	processReq.ProcessedBy = identity.UserID
	processReq.ProcessorName = identity.Name

	if err := processReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	processed, err := h.requestService.Process(r.Context(), processReq)
	if err != nil {
		slog.Error("Process request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request processed successfully", toRequestResponse(processed))
}
