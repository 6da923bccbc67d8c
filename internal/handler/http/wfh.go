package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/middleware"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"

	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

type WFHHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListByRequester(w http.ResponseWriter, r *http.Request)
	ListApprovedByRequester(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
	ListByManager(w http.ResponseWriter, r *http.Request)
	ListByDepartment(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	AuditTrail(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
}

type wfhHandlerImpl struct {
	svc wfh.Service
}

func NewWFHHandler(svc wfh.Service) WFHHandler {
	return &wfhHandlerImpl{svc: svc}
}

func (h *wfhHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req wfh.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.svc.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "WFH request submitted", wfh.ToRequestResponse(created))
}

func (h *wfhHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := validator.ParseID(chi.URLParam(r, "requestID"))
	if !ok {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	request, err := h.svc.GetByID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponse(request))
}

func (h *wfhHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponseList(requests))
}

func (h *wfhHandlerImpl) ListByRequester(w http.ResponseWriter, r *http.Request) {
	h.listByStaffID(w, r, h.svc.ListByRequester)
}

func (h *wfhHandlerImpl) ListApprovedByRequester(w http.ResponseWriter, r *http.Request) {
	h.listByStaffID(w, r, h.svc.ListApprovedByRequester)
}

func (h *wfhHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	h.listByStaffID(w, r, h.svc.ListByStaff)
}

func (h *wfhHandlerImpl) ListByManager(w http.ResponseWriter, r *http.Request) {
	h.listByStaffID(w, r, h.svc.ListByManager)
}

func (h *wfhHandlerImpl) listByStaffID(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error)) {
	staffID, ok := validator.ParseID(chi.URLParam(r, "staffID"))
	if !ok {
		response.BadRequest(w, "Invalid staff ID", nil)
		return
	}

	requests, err := list(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponseList(requests))
}

func (h *wfhHandlerImpl) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")
	if validator.IsEmpty(dept) {
		response.BadRequest(w, "Invalid department", nil)
		return
	}

	requests, err := h.svc.ListByDepartment(r.Context(), dept)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponseList(requests))
}

func (h *wfhHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	requests, err := h.svc.ListByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponseList(requests))
}

func (h *wfhHandlerImpl) AuditTrail(w http.ResponseWriter, r *http.Request) {
	requestID, ok := validator.ParseID(chi.URLParam(r, "requestID"))
	if !ok {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	records, err := h.svc.AuditTrail(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToAuditResponseList(records))
}

func (h *wfhHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
		return h.svc.Approve(ctx, actor, requestID, entryID)
	})
}

func (h *wfhHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.svc.Reject)
}

func (h *wfhHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
		return h.svc.Cancel(ctx, actor, requestID, entryID)
	})
}

func (h *wfhHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
		return h.svc.RevokeApproved(ctx, actor, requestID, entryID)
	})
}

func (h *wfhHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.svc.RequestWithdrawal)
}

func (h *wfhHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
		return h.svc.AcknowledgeWithdrawal(ctx, actor, requestID, entryID)
	})
}

// action handles the shared shape of every per-entry transition route.
// The body is optional for actions that take no reason.
func (h *wfhHandlerImpl) action(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error)) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	requestID, ok := validator.ParseID(chi.URLParam(r, "requestID"))
	if !ok {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}
	entryID, ok := validator.ParseID(chi.URLParam(r, "entryID"))
	if !ok {
		response.BadRequest(w, "Invalid entry ID", nil)
		return
	}

	var input wfh.ActionInput
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	entry, err := apply(r.Context(), actor, requestID, entryID, input.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToEntryResponse(entry))
}
