package delegation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
)

// Service implements delegation.Service. Accept and reject follow the same
// compare-and-swap discipline as the request engine; activation and expiry
// run from the scheduler and substitute the reporting manager of the
// affected staff for the delegation window.
type Service struct {
	tx          database.TxRunner
	delegations delegation.Repository
	employees   employee.Repository
	notifier    wfh.Notifier
	clock       func() time.Time
}

func NewService(tx database.TxRunner, delegations delegation.Repository, employees employee.Repository, notifier wfh.Notifier) *Service {
	return &Service{
		tx:          tx,
		delegations: delegations,
		employees:   employees,
		notifier:    notifier,
		clock:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor employee.Actor, req delegation.CreateRequest) (delegation.Delegation, error) {
	if err := req.Validate(); err != nil {
		return delegation.Delegation{}, err
	}
	if req.DelegateTo == actor.StaffID {
		return delegation.Delegation{}, delegation.ErrSelfDelegation
	}
	if _, err := s.employees.GetByStaffID(ctx, req.DelegateTo); err != nil {
		return delegation.Delegation{}, fmt.Errorf("failed to get delegate: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	d := delegation.Delegation{
		DelegateFrom:       actor.StaffID,
		DelegateTo:         req.DelegateTo,
		StartDate:          start,
		EndDate:            end,
		Reason:             req.Reason,
		Status:             delegation.StatusPending,
		NotificationStatus: delegation.NotificationPending,
		CreatedAt:          s.clock(),
	}

	var created delegation.Delegation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.delegations.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to create delegation: %w", err)
		}
		_, err = s.delegations.AppendHistory(ctx, delegation.StatusHistory{
			DelegateID: created.DelegateID,
			Status:     delegation.StatusPending,
			ActorID:    actor.StaffID,
		})
		return err
	})
	if err != nil {
		return delegation.Delegation{}, err
	}

	s.notify(created.DelegateTo, "delegation_requested", map[string]interface{}{
		"delegate_id":   created.DelegateID,
		"delegate_from": created.DelegateFrom,
	})
	return created, nil
}

func (s *Service) Accept(ctx context.Context, actor employee.Actor, delegateID int64) (delegation.Delegation, error) {
	return s.respond(ctx, actor, delegateID, delegation.StatusAccepted)
}

func (s *Service) Reject(ctx context.Context, actor employee.Actor, delegateID int64) (delegation.Delegation, error) {
	return s.respond(ctx, actor, delegateID, delegation.StatusRejected)
}

// respond settles a pending delegation. Only the delegate answers, and a
// retry of the answer already recorded is a no-op.
func (s *Service) respond(ctx context.Context, actor employee.Actor, delegateID int64, to delegation.Status) (delegation.Delegation, error) {
	d, err := s.delegations.GetByID(ctx, delegateID)
	if err != nil {
		return delegation.Delegation{}, err
	}
	if actor.StaffID != d.DelegateTo {
		return delegation.Delegation{}, delegation.ErrUnauthorized
	}
	if d.Status == to {
		return d, nil
	}
	if d.Status != delegation.StatusPending {
		return delegation.Delegation{}, delegation.ErrInvalidState
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.delegations.UpdateStatus(ctx, delegateID, delegation.StatusPending, to, delegation.NotificationStatus(to)); err != nil {
			return err
		}
		_, err := s.delegations.AppendHistory(ctx, delegation.StatusHistory{
			DelegateID: delegateID,
			Status:     to,
			ActorID:    actor.StaffID,
		})
		return err
	})
	if err != nil {
		return delegation.Delegation{}, err
	}

	d.Status = to
	d.NotificationStatus = delegation.NotificationStatus(to)
	s.notify(d.DelegateFrom, "delegation_"+string(to), map[string]interface{}{
		"delegate_id": d.DelegateID,
		"delegate_to": d.DelegateTo,
	})
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, actor employee.Actor, delegateID int64) (delegation.Delegation, error) {
	d, err := s.delegations.GetByID(ctx, delegateID)
	if err != nil {
		return delegation.Delegation{}, err
	}
	if actor.StaffID != d.DelegateFrom && actor.StaffID != d.DelegateTo && !actor.Role.CompanyWideScope() {
		return delegation.Delegation{}, delegation.ErrUnauthorized
	}
	return d, nil
}

// ListForStaff returns every delegation the staff member is a party to and
// marks the unseen ones seen, same discipline as the request feed.
func (s *Service) ListForStaff(ctx context.Context, staffID int64) ([]delegation.Delegation, error) {
	delegations, err := s.delegations.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	var unseen []int64
	for _, d := range delegations {
		switch d.NotificationStatus {
		case delegation.NotificationPending:
			if d.DelegateTo == staffID {
				unseen = append(unseen, d.DelegateID)
			}
		case delegation.NotificationAccepted, delegation.NotificationRejected:
			if d.DelegateFrom == staffID {
				unseen = append(unseen, d.DelegateID)
			}
		}
	}
	if len(unseen) > 0 {
		if err := s.delegations.MarkSeen(ctx, unseen); err != nil {
			return nil, fmt.Errorf("failed to mark delegations seen: %w", err)
		}
	}
	return delegations, nil
}

func (s *Service) History(ctx context.Context, delegateID int64) ([]delegation.StatusHistory, error) {
	if _, err := s.delegations.GetByID(ctx, delegateID); err != nil {
		return nil, err
	}
	return s.delegations.ListHistory(ctx, delegateID)
}

// ActivateDue turns on accepted delegations whose window has opened. The
// delegator's reports are re-pointed at the delegate, and the moved staff
// are snapshotted so expiry can restore them.
func (s *Service) ActivateDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.delegations.ListAcceptedStarting(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due delegations: %w", err)
	}

	count := 0
	for _, d := range due {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			reports, err := s.employees.ListByManager(ctx, d.DelegateFrom)
			if err != nil {
				return err
			}
			affected := make([]int64, 0, len(reports))
			for _, report := range reports {
				if report.StaffID == d.DelegateTo {
					continue
				}
				if err := s.employees.UpdateReportingManager(ctx, report.StaffID, d.DelegateTo); err != nil {
					return err
				}
				affected = append(affected, report.StaffID)
			}
			return s.delegations.SetActive(ctx, d.DelegateID, true, affected)
		})
		if err != nil {
			slog.Error("Delegation activation failed", "delegate_id", d.DelegateID, "error", err)
			continue
		}
		s.notify(d.DelegateTo, "delegation_activated", map[string]interface{}{"delegate_id": d.DelegateID})
		count++
	}
	return count, nil
}

// ExpireEnded reverts active delegations whose window has closed, restoring
// the snapshotted staff to the original manager.
func (s *Service) ExpireEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.delegations.ListActiveEnded(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list ended delegations: %w", err)
	}

	count := 0
	for _, d := range ended {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			for _, staffID := range d.AffectedStaff {
				if err := s.employees.UpdateReportingManager(ctx, staffID, d.DelegateFrom); err != nil {
					return err
				}
			}
			return s.delegations.SetActive(ctx, d.DelegateID, false, nil)
		})
		if err != nil {
			slog.Error("Delegation expiry failed", "delegate_id", d.DelegateID, "error", err)
			continue
		}
		s.notify(d.DelegateFrom, "delegation_expired", map[string]interface{}{"delegate_id": d.DelegateID})
		count++
	}
	return count, nil
}

func (s *Service) notify(staffID int64, event string, data interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(staffID, event, data)
	}
}
