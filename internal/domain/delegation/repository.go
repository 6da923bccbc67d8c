package delegation

import (
	"context"
	"time"
)

// Repository - interface for the delegations / delegation_status_history
// tables. UpdateStatus is a compare-and-swap on the current status, same
// discipline as the WFH entry repository.
type Repository interface {
	Create(ctx context.Context, d Delegation) (Delegation, error)
	GetByID(ctx context.Context, delegateID int64) (Delegation, error)
	ListByStaff(ctx context.Context, staffID int64) ([]Delegation, error)
	UpdateStatus(ctx context.Context, delegateID int64, from, to Status, notification NotificationStatus) error
	SetActive(ctx context.Context, delegateID int64, active bool, affectedStaff []int64) error

	ListAcceptedStarting(ctx context.Context, asOf time.Time) ([]Delegation, error)
	ListActiveEnded(ctx context.Context, asOf time.Time) ([]Delegation, error)

	AppendHistory(ctx context.Context, h StatusHistory) (StatusHistory, error)
	ListHistory(ctx context.Context, delegateID int64) ([]StatusHistory, error)

	CountUnseen(ctx context.Context, staffID int64) (int64, error)
	MarkSeen(ctx context.Context, delegateIDs []int64) error
}
