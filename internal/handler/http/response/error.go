package response

import (
	"errors"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/auth"
	"github.com/contracthq/contracts-backend-go/internal/domain/company"
	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/request"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"github.com/contracthq/contracts-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrPasswordIncorrect):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidPasswordLength), errors.Is(err, user.ErrInvalidEmailFormat):
		BadRequest(w, err.Error(), nil)

	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, contract.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, contract.ErrCompanyNotFound), errors.Is(err, company.ErrCompanyNotFound), errors.Is(err, company.ErrNoPrimaryCompany):
		NotFound(w, "Company not found")
	case errors.Is(err, contract.ErrNotContractOwner):
		Forbidden(w, "Contract belongs to another employee")
	case errors.Is(err, contract.ErrInvalidType),
		errors.Is(err, contract.ErrInvalidStatus),
		errors.Is(err, contract.ErrEndBeforeStart),
		errors.Is(err, contract.ErrEndDateRequired),
		errors.Is(err, contract.ErrStartDateRequired):
		BadRequest(w, err.Error(), nil)

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, request.ErrPendingRequestExists):
		Conflict(w, "A pending request already exists for this contract")
	case errors.Is(err, request.ErrInvalidType),
		errors.Is(err, request.ErrInvalidAction),
		errors.Is(err, request.ErrRequestedStatusMissing):
		BadRequest(w, err.Error(), nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNameExists):
		Conflict(w, "Company name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
