package wfh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

// Engine implements wfh.Service. Every mutation follows the same shape:
// load current state, authorize, consult the transition table, then apply
// the change, the audit rows and the notification flag inside one
// transaction.
type Engine struct {
	tx        database.TxRunner
	requests  wfh.RequestRepository
	audits    wfh.AuditRepository
	employees employee.Repository
	notifier  wfh.Notifier
	clock     func() time.Time
}

func NewEngine(
	tx database.TxRunner,
	requests wfh.RequestRepository,
	audits wfh.AuditRepository,
	employees employee.Repository,
	notifier wfh.Notifier,
) *Engine {
	return &Engine{
		tx:        tx,
		requests:  requests,
		audits:    audits,
		employees: employees,
		notifier:  notifier,
		clock:     time.Now,
	}
}

// systemActorID marks transitions performed by the scheduler, not a person.
const systemActorID int64 = 0

// autoRejectHorizonDays bounds how far ahead the sweep looks for pending
// entries. Deadlines never sit more than a weekend away from the entry
// date, so four days of lookahead always covers them.
const autoRejectHorizonDays = 4

func (e *Engine) Submit(ctx context.Context, actor employee.Actor, in wfh.SubmitRequest) (wfh.WFHRequest, error) {
	if err := in.Validate(); err != nil {
		return wfh.WFHRequest{}, err
	}

	now := e.clock()
	nextWorking := NextWorkingDay(now)

	var errs validator.ValidationErrors
	dates := make([]time.Time, 0, len(in.Entries))
	seen := make(map[string]struct{}, len(in.Entries))
	for i, entry := range in.Entries {
		field := "entries[" + validator.Itoa(i) + "].entry_date"

		date, _ := validator.IsValidDate(entry.EntryDate)
		if _, dup := seen[entry.EntryDate]; dup {
			return wfh.WFHRequest{}, wfh.ErrDuplicateRequest
		}
		seen[entry.EntryDate] = struct{}{}

		if IsWeekend(date) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "Entry date falls on a weekend"})
			continue
		}
		if !date.After(nextWorking) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "Entry date must be after the next working day"})
			continue
		}
		dates = append(dates, date)
	}
	if len(errs) > 0 {
		return wfh.WFHRequest{}, errs
	}

	emp, err := e.employees.GetByStaffID(ctx, actor.StaffID)
	if err != nil {
		return wfh.WFHRequest{}, fmt.Errorf("failed to get requester: %w", err)
	}

	// A requester who is their own reporting manager has nobody to review
	// the request, so entries are created approved.
	selfManaged := emp.ReportingManager == emp.StaffID
	entryStatus := wfh.StatusPending
	if selfManaged {
		entryStatus = wfh.StatusApproved
	}

	request := wfh.WFHRequest{
		RequesterID:            emp.StaffID,
		ReportingManager:       emp.ReportingManager,
		Department:             emp.Dept,
		OverallStatus:          entryStatus,
		NotificationStatus:     wfh.NotificationDelivered,
		LastNotificationStatus: wfh.NotificationDelivered,
		CreatedAt:              now,
		ModifiedAt:             now,
	}
	for i, entry := range in.Entries {
		request.Entries = append(request.Entries, wfh.WFHEntry{
			EntryDate: dates[i],
			Duration:  wfh.Duration(entry.Duration),
			Reason:    entry.Reason,
			Status:    entryStatus,
		})
	}

	var created wfh.WFHRequest
	err = e.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := e.requests.LockRequester(ctx, emp.StaffID); err != nil {
			return fmt.Errorf("failed to lock requester: %w", err)
		}

		conflict, err := e.requests.HasActiveEntryOnDates(ctx, emp.StaffID, dates)
		if err != nil {
			return fmt.Errorf("failed to check existing entries: %w", err)
		}
		if conflict {
			return wfh.ErrDuplicateRequest
		}

		created, err = e.requests.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create WFH request: %w", err)
		}

		if _, err := e.audits.Append(ctx, requestAudit(created, actor.StaffID)); err != nil {
			return fmt.Errorf("failed to append audit record: %w", err)
		}
		for _, entry := range created.Entries {
			if _, err := e.audits.Append(ctx, entryAudit(created, entry, actor.StaffID)); err != nil {
				return fmt.Errorf("failed to append audit record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return wfh.WFHRequest{}, err
	}

	if !selfManaged {
		e.notify(created.ReportingManager, "wfh_request_submitted", map[string]interface{}{
			"request_id":   created.RequestID,
			"requester_id": created.RequesterID,
		})
	}
	return created, nil
}

func (e *Engine) Approve(ctx context.Context, actor employee.Actor, requestID, entryID int64) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionApprove, nil)
}

func (e *Engine) Reject(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionReject, &reason)
}

func (e *Engine) Cancel(ctx context.Context, actor employee.Actor, requestID, entryID int64) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionCancel, nil)
}

func (e *Engine) RevokeApproved(ctx context.Context, actor employee.Actor, requestID, entryID int64) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionRevoke, nil)
}

func (e *Engine) RequestWithdrawal(ctx context.Context, actor employee.Actor, requestID, entryID int64, reason string) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionWithdraw, &reason)
}

func (e *Engine) AcknowledgeWithdrawal(ctx context.Context, actor employee.Actor, requestID, entryID int64) (wfh.WFHEntry, error) {
	return e.transition(ctx, actor, requestID, entryID, wfh.ActionAcknowledge, nil)
}

// transition is the single path every per-entry action takes. Retrying an
// action whose target status the entry already holds returns the entry
// unchanged; any other action on a settled entry is an invalid state.
func (e *Engine) transition(ctx context.Context, actor employee.Actor, requestID, entryID int64, act wfh.Action, reason *string) (wfh.WFHEntry, error) {
	request, err := e.requests.GetByID(ctx, requestID)
	if err != nil {
		return wfh.WFHEntry{}, err
	}
	entry, err := e.requests.GetEntry(ctx, requestID, entryID)
	if err != nil {
		return wfh.WFHEntry{}, err
	}

	if err := authorize(actor, request, act); err != nil {
		return wfh.WFHEntry{}, err
	}

	if entry.Status == act.Target() {
		return entry, nil
	}

	if act.RequiresReason() && (reason == nil || validator.IsEmpty(*reason)) {
		return wfh.WFHEntry{}, validator.ValidationErrors{
			{Field: "action_reason", Message: "A reason is required for this action"},
		}
	}

	if _, ok := wfh.NextStatus(entry.Status, act); !ok {
		return wfh.WFHEntry{}, wfh.ErrInvalidState
	}

	updated, overall, err := e.applyTransition(ctx, request, entry, act, reason, actor.StaffID)
	if err != nil {
		return wfh.WFHEntry{}, err
	}

	e.notify(request.RequesterID, "wfh_request_"+string(act), map[string]interface{}{
		"request_id":     requestID,
		"entry_id":       entryID,
		"status":         string(updated.Status),
		"overall_status": string(overall),
	})
	return updated, nil
}

// applyTransition performs the transactional part of a transition: the
// compare-and-swap on the entry, both audit rows and the recomputed
// overall status. The CAS loser surfaces as ErrInvalidState.
func (e *Engine) applyTransition(ctx context.Context, request wfh.WFHRequest, entry wfh.WFHEntry, act wfh.Action, reason *string, actorID int64) (wfh.WFHEntry, wfh.Status, error) {
	to, _ := wfh.NextStatus(entry.Status, act)

	var updated wfh.WFHEntry
	var overall wfh.Status
	err := e.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = e.requests.UpdateEntryStatus(ctx, entry.EntryID, entry.Status, to, reason)
		if err != nil {
			return err
		}

		if _, err := e.audits.Append(ctx, entryAudit(request, updated, actorID)); err != nil {
			return fmt.Errorf("failed to append audit record: %w", err)
		}

		entries, err := e.requests.ListEntries(ctx, request.RequestID)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		overall = wfh.OverallStatusOf(entries)

		if overall != request.OverallStatus {
			snapshot := request
			snapshot.OverallStatus = overall
			if _, err := e.audits.Append(ctx, requestAudit(snapshot, actorID)); err != nil {
				return fmt.Errorf("failed to append audit record: %w", err)
			}
		}

		if err := e.requests.UpdateRequestStatus(ctx, request.RequestID, overall, wfh.NotificationStatusFor(act)); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}
		return nil
	})
	if err != nil {
		return wfh.WFHEntry{}, "", err
	}
	return updated, overall, nil
}

// authorize maps each action to the identity allowed to perform it. The
// transition table decides legality of the move; this decides who may ask.
func authorize(actor employee.Actor, request wfh.WFHRequest, act wfh.Action) error {
	switch act {
	case wfh.ActionApprove, wfh.ActionReject, wfh.ActionAcknowledge:
		if actor.StaffID != request.ReportingManager {
			return wfh.ErrUnauthorized
		}
	case wfh.ActionWithdraw:
		// Self-managed requesters revoke their own approvals instead.
		if actor.StaffID != request.ReportingManager || request.RequesterID == request.ReportingManager {
			return wfh.ErrUnauthorized
		}
	case wfh.ActionCancel, wfh.ActionRevoke:
		if actor.StaffID != request.RequesterID {
			return wfh.ErrUnauthorized
		}
	default:
		return wfh.ErrUnauthorized
	}
	return nil
}

func (e *Engine) GetByID(ctx context.Context, requestID int64) (wfh.WFHRequest, error) {
	return e.requests.GetByID(ctx, requestID)
}

func (e *Engine) ListByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return e.requests.ListByRequester(ctx, staffID)
}

func (e *Engine) ListApprovedByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return e.requests.ListApprovedByRequester(ctx, staffID)
}

func (e *Engine) ListByManager(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return e.requests.ListByManager(ctx, staffID)
}

func (e *Engine) ListByStaff(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return e.requests.ListByStaff(ctx, staffID)
}

func (e *Engine) ListAll(ctx context.Context) ([]wfh.WFHRequest, error) {
	return e.requests.ListAll(ctx)
}

func (e *Engine) ListByDepartment(ctx context.Context, dept string) ([]wfh.WFHRequest, error) {
	return e.requests.ListByDepartment(ctx, dept)
}

func (e *Engine) ListByDate(ctx context.Context, date time.Time) ([]wfh.WFHRequest, error) {
	return e.requests.ListByDate(ctx, DateOnly(date))
}

func (e *Engine) AuditTrail(ctx context.Context, requestID int64) ([]wfh.AuditRecord, error) {
	if _, err := e.requests.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return e.audits.ListByRequest(ctx, requestID)
}

// AutoRejectDue settles every pending entry whose review deadline has
// passed. Entries another writer settles mid-sweep lose the CAS and are
// skipped silently.
func (e *Engine) AutoRejectDue(ctx context.Context, now time.Time) (int, error) {
	pending, err := e.requests.ListPendingEntriesThrough(ctx, DateOnly(now).AddDate(0, 0, autoRejectHorizonDays))
	if err != nil {
		return 0, fmt.Errorf("failed to list pending entries: %w", err)
	}

	count := 0
	for _, entry := range pending {
		if now.Before(PreviousWorkingDay(entry.EntryDate)) {
			continue
		}

		request, err := e.requests.GetByID(ctx, entry.RequestID)
		if err != nil {
			slog.Error("Auto-reject: failed to load request", "request_id", entry.RequestID, "error", err)
			continue
		}

		_, overall, err := e.applyTransition(ctx, request, entry, wfh.ActionAutoReject, nil, systemActorID)
		if errors.Is(err, wfh.ErrInvalidState) {
			continue
		}
		if err != nil {
			slog.Error("Auto-reject: transition failed", "entry_id", entry.EntryID, "error", err)
			continue
		}

		data := map[string]interface{}{
			"request_id":     entry.RequestID,
			"entry_id":       entry.EntryID,
			"status":         string(wfh.StatusAutoRejected),
			"overall_status": string(overall),
		}
		e.notify(request.RequesterID, "wfh_request_auto_reject", data)
		if request.ReportingManager != request.RequesterID {
			e.notify(request.ReportingManager, "wfh_request_auto_reject", data)
		}
		count++
	}
	return count, nil
}

func (e *Engine) notify(staffID int64, event string, data interface{}) {
	if e.notifier != nil {
		e.notifier.Notify(staffID, event, data)
	}
}

// entryAudit snapshots one entry into an audit row.
func entryAudit(request wfh.WFHRequest, entry wfh.WFHEntry, actorID int64) wfh.AuditRecord {
	date := entry.EntryDate
	reason := entry.Reason
	duration := entry.Duration
	return wfh.AuditRecord{
		RequestID:        request.RequestID,
		EntryID:          &entry.EntryID,
		RequesterID:      request.RequesterID,
		ReportingManager: request.ReportingManager,
		Department:       request.Department,
		EntryDate:        &date,
		Reason:           &reason,
		Duration:         &duration,
		Status:           entry.Status,
		ActionReason:     entry.ActionReason,
		ActorID:          actorID,
	}
}

// requestAudit records an overall-status change; EntryID stays nil.
func requestAudit(request wfh.WFHRequest, actorID int64) wfh.AuditRecord {
	return wfh.AuditRecord{
		RequestID:        request.RequestID,
		RequesterID:      request.RequesterID,
		ReportingManager: request.ReportingManager,
		Department:       request.Department,
		Status:           request.OverallStatus,
		ActorID:          actorID,
	}
}
