package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/middleware"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	usersvc "github.com/contracthq/contracts-backend-go/internal/service/user"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService *usersvc.Service
}

func NewUserHandler(userService *usersvc.Service) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponses(users))
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", user.ToResponse(created))
}

// GetByID implements UserHandler. Returns the user together with their
// contracts.
func (h *UserHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	u, contracts, err := h.userService.GetWithContracts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"user":      user.ToResponse(u),
		"contracts": contract.ToResponses(contracts),
	})
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", user.ToResponse(updated))
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete user service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// ChangePassword implements UserHandler. The service enforces that only
// the user themselves or an admin can change a password.
func (h *UserHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var changeReq user.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("Change password decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	changeReq.UserID = chi.URLParam(r, "id")

	if err := changeReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), identity.UserID, identity.Role, changeReq); err != nil {
		slog.Error("Change password service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password updated successfully", nil)
}

// Me implements UserHandler. Returns the authenticated caller's own
// record.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := h.userService.GetByID(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}
