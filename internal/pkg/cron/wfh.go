package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
)

// WFHJobs holds the background sweeps for the request lifecycle.
type WFHJobs struct {
	svc      wfh.Service
	interval time.Duration
}

func NewWFHJobs(svc wfh.Service, interval time.Duration) *WFHJobs {
	return &WFHJobs{svc: svc, interval: interval}
}

func (j *WFHJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_reject_overdue_requests", j.interval, j.AutoRejectOverdue)
}

// AutoRejectOverdue rejects pending entries whose review deadline has
// passed. The sweep is idempotent, entries another actor settled in the
// meantime are skipped.
func (j *WFHJobs) AutoRejectOverdue(ctx context.Context) error {
	count, err := j.svc.AutoRejectDue(ctx, time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Cron: Auto-rejected overdue entries", "count", count)
	}
	return nil
}
