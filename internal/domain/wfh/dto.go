package wfh

import (
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

// EntryInput is one requested date within a submission.
type EntryInput struct {
	EntryDate string `json:"entry_date"`
	Duration  string `json:"duration"`
	Reason    string `json:"reason"`
}

// SubmitRequest is the body of a request submission. The requester is taken
// from the caller's token, never from the body.
type SubmitRequest struct {
	Entries []EntryInput `json:"entries"`
}

// Validate checks shape only (presence, formats). Business rules - weekend,
// lead time, duplicate dates - are enforced by the engine.
func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "At least one entry is required"})
		return errs
	}

	for i, e := range r.Entries {
		prefix := "entries[" + validator.Itoa(i) + "]."
		if validator.IsEmpty(e.EntryDate) {
			errs = append(errs, validator.ValidationError{Field: prefix + "entry_date", Message: "Entry date is required"})
		} else if _, ok := validator.IsValidDate(e.EntryDate); !ok {
			errs = append(errs, validator.ValidationError{Field: prefix + "entry_date", Message: "Entry date must be YYYY-MM-DD"})
		}
		if validator.IsEmpty(e.Reason) {
			errs = append(errs, validator.ValidationError{Field: prefix + "reason", Message: "Reason is required"})
		}
		if !Duration(e.Duration).Valid() {
			errs = append(errs, validator.ValidationError{Field: prefix + "duration", Message: "Duration must be AM, PM or Full Day"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActionInput is the body of a single-entry transition call.
type ActionInput struct {
	Reason string `json:"action_reason"`
}

// EntryResponse is the JSON shape of an entry.
type EntryResponse struct {
	EntryID      int64   `json:"entry_id"`
	RequestID    int64   `json:"request_id"`
	EntryDate    string  `json:"entry_date"`
	Duration     string  `json:"duration"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ActionReason *string `json:"action_reason"`
}

// RequestResponse is the JSON shape of a request with its entries.
type RequestResponse struct {
	RequestID              int64           `json:"request_id"`
	RequesterID            int64           `json:"requester_id"`
	ReportingManager       int64           `json:"reporting_manager"`
	Department             string          `json:"department"`
	OverallStatus          string          `json:"overall_status"`
	NotificationStatus     string          `json:"notification_status"`
	LastNotificationStatus string          `json:"last_notification_status"`
	CreatedAt              time.Time       `json:"created_at"`
	ModifiedAt             time.Time       `json:"modified_at"`
	Entries                []EntryResponse `json:"entries"`
}

// AuditResponse is the JSON shape of an audit record.
type AuditResponse struct {
	AuditID          int64     `json:"audit_id"`
	RequestID        int64     `json:"request_id"`
	EntryID          *int64    `json:"entry_id"`
	RequesterID      int64     `json:"requester_id"`
	ReportingManager int64     `json:"reporting_manager"`
	Department       string    `json:"department"`
	EntryDate        *string   `json:"entry_date"`
	Reason           *string   `json:"reason"`
	Duration         *string   `json:"duration"`
	Status           string    `json:"status"`
	ActionReason     *string   `json:"action_reason"`
	ActorID          int64     `json:"actor_id"`
	CreatedAt        time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

func ToEntryResponse(e WFHEntry) EntryResponse {
	return EntryResponse{
		EntryID:      e.EntryID,
		RequestID:    e.RequestID,
		EntryDate:    e.EntryDate.Format(dateLayout),
		Duration:     string(e.Duration),
		Reason:       e.Reason,
		Status:       string(e.Status),
		ActionReason: e.ActionReason,
	}
}

func ToRequestResponse(r WFHRequest) RequestResponse {
	entries := make([]EntryResponse, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, ToEntryResponse(e))
	}
	return RequestResponse{
		RequestID:              r.RequestID,
		RequesterID:            r.RequesterID,
		ReportingManager:       r.ReportingManager,
		Department:             r.Department,
		OverallStatus:          string(r.OverallStatus),
		NotificationStatus:     string(r.NotificationStatus),
		LastNotificationStatus: string(r.LastNotificationStatus),
		CreatedAt:              r.CreatedAt,
		ModifiedAt:             r.ModifiedAt,
		Entries:                entries,
	}
}

func ToRequestResponseList(requests []WFHRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToRequestResponse(r))
	}
	return out
}

func ToAuditResponse(a AuditRecord) AuditResponse {
	resp := AuditResponse{
		AuditID:          a.AuditID,
		RequestID:        a.RequestID,
		EntryID:          a.EntryID,
		RequesterID:      a.RequesterID,
		ReportingManager: a.ReportingManager,
		Department:       a.Department,
		Reason:           a.Reason,
		Status:           string(a.Status),
		ActionReason:     a.ActionReason,
		ActorID:          a.ActorID,
		CreatedAt:        a.CreatedAt,
	}
	if a.EntryDate != nil {
		formatted := a.EntryDate.Format(dateLayout)
		resp.EntryDate = &formatted
	}
	if a.Duration != nil {
		duration := string(*a.Duration)
		resp.Duration = &duration
	}
	return resp
}

func ToAuditResponseList(records []AuditRecord) []AuditResponse {
	out := make([]AuditResponse, 0, len(records))
	for _, a := range records {
		out = append(out, ToAuditResponse(a))
	}
	return out
}
