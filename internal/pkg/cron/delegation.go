package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
)

// DelegationJobs activates accepted delegations whose window has opened
// and reverts active ones whose window has closed.
type DelegationJobs struct {
	svc      delegation.Service
	interval time.Duration
}

func NewDelegationJobs(svc delegation.Service, interval time.Duration) *DelegationJobs {
	return &DelegationJobs{svc: svc, interval: interval}
}

func (j *DelegationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("activate_due_delegations", j.interval, j.ActivateDue)
	scheduler.AddJob("expire_ended_delegations", j.interval, j.ExpireEnded)
}

func (j *DelegationJobs) ActivateDue(ctx context.Context) error {
	count, err := j.svc.ActivateDue(ctx, time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Cron: Activated delegations", "count", count)
	}
	return nil
}

func (j *DelegationJobs) ExpireEnded(ctx context.Context) error {
	count, err := j.svc.ExpireEnded(ctx, time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Cron: Expired delegations", "count", count)
	}
	return nil
}
