package delegation

import "time"

// Status of a delegation request. Shares the engine's transition-and-audit
// pattern on a smaller state machine: pending is the only non-terminal
// state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// NotificationStatus for the delegation feed.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationAccepted NotificationStatus = "accepted"
	NotificationRejected NotificationStatus = "rejected"
	NotificationSeen     NotificationStatus = "seen"
)

// Delegation lets a manager hand approval authority to another staff member
// for a date window. While active, employees reporting to DelegateFrom are
// re-pointed at DelegateTo; AffectedStaff records who was moved so expiry
// can restore them.
type Delegation struct {
	DelegateID         int64
	DelegateFrom       int64
	DelegateTo         int64
	StartDate          time.Time
	EndDate            time.Time
	Reason             string
	Status             Status
	NotificationStatus NotificationStatus
	Active             bool
	AffectedStaff      []int64
	CreatedAt          time.Time
}

// StatusHistory is the append-only audit of a delegation's transitions.
type StatusHistory struct {
	HistoryID  int64
	DelegateID int64
	Status     Status
	ActorID    int64
	CreatedAt  time.Time
}
