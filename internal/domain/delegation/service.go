package delegation

import (
	"context"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
)

// Service handles the delegation lifecycle: creation by a manager,
// acceptance or rejection by the delegate, and the scheduled activation
// and expiry sweeps that substitute the reporting manager of the
// affected staff.
type Service interface {
	Create(ctx context.Context, actor employee.Actor, req CreateRequest) (Delegation, error)
	Accept(ctx context.Context, actor employee.Actor, delegateID int64) (Delegation, error)
	Reject(ctx context.Context, actor employee.Actor, delegateID int64) (Delegation, error)

	GetByID(ctx context.Context, actor employee.Actor, delegateID int64) (Delegation, error)
	ListForStaff(ctx context.Context, staffID int64) ([]Delegation, error)
	History(ctx context.Context, delegateID int64) ([]StatusHistory, error)

	ActivateDue(ctx context.Context, now time.Time) (int, error)
	ExpireEnded(ctx context.Context, now time.Time) (int, error)
}
