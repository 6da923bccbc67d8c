package wfh

import (
	"context"
	"time"
)

// RequestRepository - interface for the wfh_requests / wfh_entries tables.
//
// UpdateEntryStatus must be a compare-and-swap on the entry's current
// status: if the entry is no longer in `from` the update affects no rows
// and ErrInvalidState is returned. That single guarantee serializes
// concurrent writers per entry.
type RequestRepository interface {
	Create(ctx context.Context, request WFHRequest) (WFHRequest, error)
	GetByID(ctx context.Context, requestID int64) (WFHRequest, error)
	GetEntry(ctx context.Context, requestID, entryID int64) (WFHEntry, error)
	ListEntries(ctx context.Context, requestID int64) ([]WFHEntry, error)
	UpdateEntryStatus(ctx context.Context, entryID int64, from, to Status, actionReason *string) (WFHEntry, error)
	UpdateRequestStatus(ctx context.Context, requestID int64, overall Status, notification NotificationStatus) error

	// LockRequester serializes submissions per requester for the duration
	// of the surrounding transaction.
	LockRequester(ctx context.Context, requesterID int64) error
	HasActiveEntryOnDates(ctx context.Context, requesterID int64, dates []time.Time) (bool, error)
	ListPendingEntriesThrough(ctx context.Context, through time.Time) ([]WFHEntry, error)

	ListByRequester(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListApprovedByRequester(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListByManager(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListByStaff(ctx context.Context, staffID int64) ([]WFHRequest, error)
	ListAll(ctx context.Context) ([]WFHRequest, error)
	ListByDepartment(ctx context.Context, dept string) ([]WFHRequest, error)
	ListByDate(ctx context.Context, date time.Time) ([]WFHRequest, error)

	CountUnseen(ctx context.Context, staffID int64) (int64, error)
	ListFeed(ctx context.Context, staffID int64) ([]WFHRequest, error)
	MarkSeen(ctx context.Context, requestIDs []int64) error
}

// AuditRepository - interface for the audit_trail table. Append-only.
type AuditRepository interface {
	Append(ctx context.Context, record AuditRecord) (AuditRecord, error)
	ListByRequest(ctx context.Context, requestID int64) ([]AuditRecord, error)
}

// Notifier receives status-change events for the downstream feed. The
// engine never formats or delivers notifications itself.
type Notifier interface {
	Notify(staffID int64, event string, data interface{})
}
