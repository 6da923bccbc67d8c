package delegation

import (
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
)

// CreateRequest is the body of a delegation submission. DelegateFrom is
// taken from the caller's token.
type CreateRequest struct {
	DelegateTo int64  `json:"delegate_to"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DelegateTo <= 0 {
		errs = append(errs, validator.ValidationError{Field: "delegate_to", Message: "Delegate is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must not be before start date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Response is the JSON shape of a delegation.
type Response struct {
	DelegateID         int64     `json:"delegate_id"`
	DelegateFrom       int64     `json:"delegate_from"`
	DelegateTo         int64     `json:"delegate_to"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	Reason             string    `json:"reason"`
	Status             string    `json:"status"`
	NotificationStatus string    `json:"notification_status"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// HistoryResponse is the JSON shape of one status-history row.
type HistoryResponse struct {
	HistoryID  int64     `json:"history_id"`
	DelegateID int64     `json:"delegate_id"`
	Status     string    `json:"status"`
	ActorID    int64     `json:"actor_id"`
	CreatedAt  time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

func ToResponse(d Delegation) Response {
	return Response{
		DelegateID:         d.DelegateID,
		DelegateFrom:       d.DelegateFrom,
		DelegateTo:         d.DelegateTo,
		StartDate:          d.StartDate.Format(dateLayout),
		EndDate:            d.EndDate.Format(dateLayout),
		Reason:             d.Reason,
		Status:             string(d.Status),
		NotificationStatus: string(d.NotificationStatus),
		Active:             d.Active,
		CreatedAt:          d.CreatedAt,
	}
}

func ToResponseList(delegations []Delegation) []Response {
	out := make([]Response, 0, len(delegations))
	for _, d := range delegations {
		out = append(out, ToResponse(d))
	}
	return out
}

func ToHistoryResponseList(history []StatusHistory) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, HistoryResponse{
			HistoryID:  h.HistoryID,
			DelegateID: h.DelegateID,
			Status:     string(h.Status),
			ActorID:    h.ActorID,
			CreatedAt:  h.CreatedAt,
		})
	}
	return out
}
