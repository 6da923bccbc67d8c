package wfh

import (
	"context"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
)

// Service is the request lifecycle engine. Every mutating operation loads
// current state, checks the actor and the transition table, applies the
// change, emits an audit record and flags the notification feed. Mutations
// are idempotent under retry of the same (request, entry, target) triple.
type Service interface {
	Submit(ctx context.Context, actor employee.Actor, in SubmitRequest) (WFHRequest, error)

	Approve(ctx context.Context, actor employee.Actor, requestID, entryID int64) (WFHEntry, error)
	Reject(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (WFHEntry, error)
	Cancel(ctx context.Context, actor employee.Actor, requestID, entryID int64) (WFHEntry, error)
	RevokeApproved(ctx context.Context, actor employee.Actor, requestID, entryID int64) (WFHEntry, error)
	RequestWithdrawal(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (WFHEntry, error)
	AcknowledgeWithdrawal(ctx context.Context, actor employee.Actor, requestID, entryID int64) (WFHEntry, error)

	GetByID(ctx context.Context, requestID int64) (WFHRequest, error)
	ListByRequester(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListApprovedByRequester(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListByManager(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListByStaff(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListAll(ctx context.Context) ([]WFHRequest, error)
	ListByDepartment(ctx context.Context, dept string) ([]WFHRequest, error)
	ListByDate(ctx context.Context, date time.Time) ([]WFHRequest, error)
	AuditTrail(ctx context.Context, requestID int64) ([]AuditRecord, error)

	// AutoRejectDue settles entries still Pending past their deadline.
	// Invoked by the background sweep, not by callers.
	AutoRejectDue(ctx context.Context, now time.Time) (int, error)
}
