package response

import (
	"errors"
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/auth"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid staff ID or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Request lifecycle errors
	case errors.Is(err, wfh.ErrRequestNotFound):
		NotFound(w, "WFH request not found")
	case errors.Is(err, wfh.ErrEntryNotFound):
		NotFound(w, "WFH request entry not found")
	case errors.Is(err, wfh.ErrUnauthorized):
		Forbidden(w, "You are not allowed to perform this action")
	case errors.Is(err, wfh.ErrInvalidState):
		Conflict(w, "The request entry has already been processed")
	case errors.Is(err, wfh.ErrDuplicateRequest):
		Conflict(w, "An active WFH entry already exists for one of the requested dates")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Delegation domain errors
	case errors.Is(err, delegation.ErrDelegationNotFound):
		NotFound(w, "Delegation not found")
	case errors.Is(err, delegation.ErrUnauthorized):
		Forbidden(w, "You are not allowed to act on this delegation")
	case errors.Is(err, delegation.ErrInvalidState):
		Conflict(w, "The delegation has already been processed")
	case errors.Is(err, delegation.ErrSelfDelegation):
		BadRequest(w, "Cannot delegate approval authority to yourself", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
