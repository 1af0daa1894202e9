package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/middleware"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	contractsvc "github.com/contracthq/contracts-backend-go/internal/service/contract"
	filesvc "github.com/contracthq/contracts-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type ContractHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)

	UploadDocument(w http.ResponseWriter, r *http.Request)
	ListDocuments(w http.ResponseWriter, r *http.Request)
	RemoveDocument(w http.ResponseWriter, r *http.Request)

	TriggerStatusUpdate(w http.ResponseWriter, r *http.Request)
	GetExpiring(w http.ResponseWriter, r *http.Request)
	GetExpired(w http.ResponseWriter, r *http.Request)

	RunCron(w http.ResponseWriter, r *http.Request)
	CronHealth(w http.ResponseWriter, r *http.Request)
}

type ContractHandlerImpl struct {
	contractService *contractsvc.Service
	statusService   *contractsvc.StatusService
	fileService     *filesvc.Service
}

func NewContractHandler(contractService *contractsvc.Service, statusService *contractsvc.StatusService, fileService *filesvc.Service) ContractHandler {
	return &ContractHandlerImpl{
		contractService: contractService,
		statusService:   statusService,
		fileService:     fileService,
	}
}

// Create implements ContractHandler.
func (h *ContractHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq contract.CreateContractRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create contract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.contractService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create contract service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created successfully", contract.ToResponse(created))
}

// List implements ContractHandler.
func (h *ContractHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contractService.List(r.Context())
	if err != nil {
		slog.Error("List contracts service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.ToResponses(contracts))
}

// ListMy implements ContractHandler.
func (h *ContractHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	contracts, err := h.contractService.ListByEmployee(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("List own contracts service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.ToResponses(contracts))
}

// loadVisible fetches the contract and enforces that non-admin callers
// only see their own.
func (h *ContractHandlerImpl) loadVisible(r *http.Request) (contract.Contract, error) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		return contract.Contract{}, err
	}

	c, err := h.contractService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return contract.Contract{}, err
	}

	if identity.Role != user.RoleAdmin && c.EmployeeID != identity.UserID {
		return contract.Contract{}, contract.ErrNotContractOwner
	}
	return c, nil
}

// GetByID implements ContractHandler.
func (h *ContractHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadVisible(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.ToResponse(c))
}

// Update implements ContractHandler.
func (h *ContractHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq contract.UpdateContractRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update contract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.contractService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update contract service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract updated successfully", contract.ToResponse(updated))
}

// Delete implements ContractHandler.
func (h *ContractHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contractService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete contract service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Contract deleted successfully", nil)
}

// GetHistory implements ContractHandler.
func (h *ContractHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadVisible(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	history, err := h.contractService.GetStatusHistory(r.Context(), c.ID)
	if err != nil {
		slog.Error("Get status history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	entries := make([]map[string]interface{}, 0, len(history))
	for _, e := range history {
		entries = append(entries, map[string]interface{}{
			"id":              e.ID,
			"status":          e.Status,
			"previous_status": e.PreviousStatus,
			"reason":          e.Reason,
			"updated_by":      e.UpdatedBy,
			"updated_at":      e.UpdatedAt,
		})
	}
	response.Success(w, entries)
}

// UploadDocument implements ContractHandler.
func (h *ContractHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadVisible(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file upload", nil)
		return
	}
	defer file.Close()

	fileURL, _, err := h.fileService.Upload(r.Context(), c.ID, header.Filename, header.Size, file)
	if err != nil {
		slog.Error("Upload document error", "error", err)
		response.HandleError(w, err)
		return
	}

	doc, err := h.contractService.AddDocument(r.Context(), contract.AddDocumentRequest{
		ContractID: c.ID,
		FileName:   header.Filename,
		FileURL:    fileURL,
	})
	if err != nil {
		slog.Error("Add document service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", doc)
}

// ListDocuments implements ContractHandler.
func (h *ContractHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadVisible(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	docs, err := h.contractService.GetDocuments(r.Context(), c.ID)
	if err != nil {
		slog.Error("List documents service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, docs)
}

// RemoveDocument implements ContractHandler.
func (h *ContractHandlerImpl) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadVisible(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.contractService.RemoveDocument(r.Context(), c.ID, chi.URLParam(r, "docID")); err != nil {
		slog.Error("Remove document service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Document removed successfully", nil)
}

// TriggerStatusUpdate implements ContractHandler. Admin-triggered
// reconciliation pass.
func (h *ContractHandlerImpl) TriggerStatusUpdate(w http.ResponseWriter, r *http.Request) {
	updates, err := h.statusService.ReconcileAll(r.Context())
	if err != nil {
		slog.Error("Status reconciliation error", "error", err)
		response.HandleError(w, err)
		return
	}

	if updates == nil {
		updates = []contract.StatusUpdate{}
	}
	response.Success(w, map[string]interface{}{
		"updated_count": len(updates),
		"updates":       updates,
	})
}

// GetExpiring implements ContractHandler.
func (h *ContractHandlerImpl) GetExpiring(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "days must be a non-negative integer", nil)
			return
		}
		days = parsed
	}

	contracts, err := h.statusService.GetExpiringContracts(r.Context(), days)
	if err != nil {
		slog.Error("Get expiring contracts error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.ToResponses(contracts))
}

// GetExpired implements ContractHandler.
func (h *ContractHandlerImpl) GetExpired(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.statusService.GetExpiredContracts(r.Context())
	if err != nil {
		slog.Error("Get expired contracts error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.ToResponses(contracts))
}

// RunCron implements ContractHandler. Reconciliation entry point for
// external schedulers; guarded by middleware.CronAuth.
func (h *ContractHandlerImpl) RunCron(w http.ResponseWriter, r *http.Request) {
	updates, err := h.statusService.ReconcileAll(r.Context())
	if err != nil {
		slog.Error("Cron reconciliation error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Cron reconciliation completed", "updated", len(updates))
	if updates == nil {
		updates = []contract.StatusUpdate{}
	}
	response.Success(w, map[string]interface{}{
		"updated_count": len(updates),
		"updates":       updates,
	})
}

// CronHealth implements ContractHandler. Lightweight stats for external
// scheduler monitoring.
func (h *ContractHandlerImpl) CronHealth(w http.ResponseWriter, r *http.Request) {
	expiring, err := h.statusService.GetExpiringContracts(r.Context(), 0)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	expired, err := h.statusService.GetExpiredContracts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"status":         "ok",
		"expiring_count": len(expiring),
		"expired_count":  len(expired),
	})
}
