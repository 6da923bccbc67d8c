package auth

import (
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	StaffID  int64  `json:"staff_id"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "Staff ID is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   int64             `json:"expires_at"`
	Employee    employee.Response `json:"employee"`
}
