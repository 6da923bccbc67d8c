package http

import (
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetByStaffID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByManager(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employees employee.Repository
}

func NewEmployeeHandler(employees employee.Repository) EmployeeHandler {
	return &employeeHandlerImpl{employees: employees}
}

func (h *employeeHandlerImpl) GetByStaffID(w http.ResponseWriter, r *http.Request) {
	staffID, ok := validator.ParseID(chi.URLParam(r, "staffID"))
	if !ok {
		response.BadRequest(w, "Invalid staff ID", nil)
		return
	}

	emp, err := h.employees.GetByStaffID(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.ToResponse(emp))
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.ToResponseList(employees))
}

func (h *employeeHandlerImpl) ListByManager(w http.ResponseWriter, r *http.Request) {
	staffID, ok := validator.ParseID(chi.URLParam(r, "staffID"))
	if !ok {
		response.BadRequest(w, "Invalid staff ID", nil)
		return
	}

	employees, err := h.employees.ListByManager(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.ToResponseList(employees))
}
