package wfh

import "time"

// Status is the closed enumeration of request/entry statuses. The string
// values are the canonical wire representation consumed by existing callers.
type Status string

const (
	StatusPending           Status = "Pending"
	StatusApproved          Status = "Approved"
	StatusRejected          Status = "Rejected"
	StatusCancelled         Status = "Cancelled"
	StatusWithdrawn         Status = "Withdrawn"
	StatusPendingWithdrawal Status = "Pending Withdrawal"
	StatusAutoRejected      Status = "Auto Rejected"

	// StatusReviewed is an overall status only: the request's entries have
	// all been acted on but ended in different statuses.
	StatusReviewed Status = "Reviewed"
)

// Terminal reports whether no further transition can leave the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusWithdrawn, StatusAutoRejected:
		return true
	}
	return false
}

// NotificationStatus drives the downstream notification feed. The engine
// only marks it; formatting and delivery live outside.
type NotificationStatus string

const (
	NotificationDelivered     NotificationStatus = "Delivered"
	NotificationSeen          NotificationStatus = "Seen"
	NotificationEdited        NotificationStatus = "Edited"
	NotificationWithdrawn     NotificationStatus = "Withdrawn"
	NotificationSelfWithdrawn NotificationStatus = "Self-Withdrawn"
	NotificationCancelled     NotificationStatus = "Cancelled"
	NotificationAcknowledged  NotificationStatus = "Acknowledged"
	NotificationAutoRejected  NotificationStatus = "Auto Rejected"
)

// Duration of a single entry.
type Duration string

const (
	DurationAM      Duration = "AM"
	DurationPM      Duration = "PM"
	DurationFullDay Duration = "Full Day"
)

// Valid reports whether d is one of the known durations.
func (d Duration) Valid() bool {
	switch d {
	case DurationAM, DurationPM, DurationFullDay:
		return true
	}
	return false
}

// WFHRequest groups the entries made in one submission. Requests are never
// deleted; only their entries' statuses change.
type WFHRequest struct {
	RequestID              int64
	RequesterID            int64
	ReportingManager       int64 // snapshot at creation
	Department             string
	OverallStatus          Status
	NotificationStatus     NotificationStatus
	LastNotificationStatus NotificationStatus
	CreatedAt              time.Time
	ModifiedAt             time.Time
	Entries                []WFHEntry
}

// WFHEntry is one single-date, single-duration line item of a request.
type WFHEntry struct {
	EntryID      int64
	RequestID    int64
	EntryDate    time.Time
	Duration     Duration
	Reason       string
	Status       Status
	ActionReason *string
}

// AuditRecord is an append-only log row. Entry-level rows carry the entry
// snapshot; request-level rows (EntryID nil) record overall-status changes.
type AuditRecord struct {
	AuditID          int64
	RequestID        int64
	EntryID          *int64
	RequesterID      int64
	ReportingManager int64
	Department       string
	EntryDate        *time.Time
	Reason           *string
	Duration         *Duration
	Status           Status
	ActionReason     *string
	ActorID          int64 // 0 for system-initiated transitions
	CreatedAt        time.Time
}

// OverallStatusOf derives a request's overall status from its entries.
// This is the single authoritative aggregation rule: Pending wins, then
// Pending Withdrawal, then a uniform status carries over, and any other
// mixture of settled entries is Reviewed.
func OverallStatusOf(entries []WFHEntry) Status {
	if len(entries) == 0 {
		return StatusPending
	}

	uniform := true
	for _, e := range entries {
		if e.Status == StatusPending {
			return StatusPending
		}
		if e.Status != entries[0].Status {
			uniform = false
		}
	}
	for _, e := range entries {
		if e.Status == StatusPendingWithdrawal {
			return StatusPendingWithdrawal
		}
	}
	if uniform {
		return entries[0].Status
	}
	return StatusReviewed
}
