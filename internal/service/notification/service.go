package notification

import (
	"context"
	"fmt"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/sse"
)

// Service bridges lifecycle events to the SSE hub and serves the pull side
// of the feed: unseen counts and the feed itself. Reading the feed marks
// its items seen.
type Service struct {
	hub         *sse.Hub
	requests    wfh.RequestRepository
	delegations delegation.Repository
}

func NewService(hub *sse.Hub, requests wfh.RequestRepository, delegations delegation.Repository) *Service {
	return &Service{hub: hub, requests: requests, delegations: delegations}
}

// Notify implements wfh.Notifier.
func (s *Service) Notify(staffID int64, event string, data interface{}) {
	s.hub.Publish(staffID, sse.Event{StaffID: staffID, Event: event, Data: data})
}

// Count returns the number of unseen feed items for a staff member,
// requests and delegations combined.
func (s *Service) Count(ctx context.Context, staffID int64) (int64, error) {
	requests, err := s.requests.CountUnseen(ctx, staffID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen requests: %w", err)
	}
	delegations, err := s.delegations.CountUnseen(ctx, staffID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen delegations: %w", err)
	}
	return requests + delegations, nil
}

// Feed returns the staff member's unseen requests and marks them seen.
func (s *Service) Feed(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	feed, err := s.requests.ListFeed(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	if len(feed) > 0 {
		ids := make([]int64, 0, len(feed))
		for _, request := range feed {
			ids = append(ids, request.RequestID)
		}
		if err := s.requests.MarkSeen(ctx, ids); err != nil {
			return nil, fmt.Errorf("failed to mark feed seen: %w", err)
		}
	}
	return feed, nil
}

// Subscribe opens an SSE stream for a staff member.
func (s *Service) Subscribe(staffID int64) (chan sse.Event, func()) {
	return s.hub.Subscribe(staffID)
}
