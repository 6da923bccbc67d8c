package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/middleware"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type DelegationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type delegationHandlerImpl struct {
	svc delegation.Service
}

func NewDelegationHandler(svc delegation.Service) DelegationHandler {
	return &delegationHandlerImpl{svc: svc}
}

func (h *delegationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req delegation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.svc.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Delegation requested", delegation.ToResponse(created))
}

func (h *delegationHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.GetByID)
}

func (h *delegationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Accept)
}

func (h *delegationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Reject)
}

func (h *delegationHandlerImpl) respond(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actor employee.Actor, delegateID int64) (delegation.Delegation, error)) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	delegateID, ok := validator.ParseID(chi.URLParam(r, "delegateID"))
	if !ok {
		response.BadRequest(w, "Invalid delegation ID", nil)
		return
	}

	d, err := apply(r.Context(), actor, delegateID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, delegation.ToResponse(d))
}

func (h *delegationHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	staffID, ok := validator.ParseID(chi.URLParam(r, "staffID"))
	if !ok {
		response.BadRequest(w, "Invalid staff ID", nil)
		return
	}

	delegations, err := h.svc.ListForStaff(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, delegation.ToResponseList(delegations))
}

func (h *delegationHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	delegateID, ok := validator.ParseID(chi.URLParam(r, "delegateID"))
	if !ok {
		response.BadRequest(w, "Invalid delegation ID", nil)
		return
	}

	history, err := h.svc.History(r.Context(), delegateID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, delegation.ToHistoryResponseList(history))
}
