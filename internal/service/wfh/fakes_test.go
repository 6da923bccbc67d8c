package wfh

import (
	"context"
	"sync"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
)

// fakeTx serializes transactions with a mutex, mirroring the row-level
// serialization the database gives the real repositories.
type fakeTx struct {
	mu sync.Mutex
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// fakeStore is an in-memory implementation of both the request and the
// audit repositories.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*wfh.WFHRequest
	entries  map[int64]*wfh.WFHEntry
	audits   []wfh.AuditRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: make(map[int64]*wfh.WFHRequest),
		entries:  make(map[int64]*wfh.WFHEntry),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Create(ctx context.Context, request wfh.WFHRequest) (wfh.WFHRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request.RequestID = s.id()
	for i := range request.Entries {
		request.Entries[i].EntryID = s.id()
		request.Entries[i].RequestID = request.RequestID
		entry := request.Entries[i]
		s.entries[entry.EntryID] = &entry
	}
	stored := request
	s.requests[request.RequestID] = &stored
	return request, nil
}

func (s *fakeStore) GetByID(ctx context.Context, requestID int64) (wfh.WFHRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return wfh.WFHRequest{}, wfh.ErrRequestNotFound
	}
	return s.snapshot(request), nil
}

func (s *fakeStore) snapshot(request *wfh.WFHRequest) wfh.WFHRequest {
	out := *request
	out.Entries = nil
	for _, entry := range s.entries {
		if entry.RequestID == request.RequestID {
			out.Entries = append(out.Entries, *entry)
		}
	}
	return out
}

func (s *fakeStore) GetEntry(ctx context.Context, requestID, entryID int64) (wfh.WFHEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[entryID]
	if !ok || entry.RequestID != requestID {
		return wfh.WFHEntry{}, wfh.ErrEntryNotFound
	}
	return *entry, nil
}

func (s *fakeStore) ListEntries(ctx context.Context, requestID int64) ([]wfh.WFHEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []wfh.WFHEntry
	for _, entry := range s.entries {
		if entry.RequestID == requestID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateEntryStatus(ctx context.Context, entryID int64, from, to wfh.Status, actionReason *string) (wfh.WFHEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[entryID]
	if !ok {
		return wfh.WFHEntry{}, wfh.ErrEntryNotFound
	}
	if entry.Status != from {
		return wfh.WFHEntry{}, wfh.ErrInvalidState
	}
	entry.Status = to
	if actionReason != nil {
		entry.ActionReason = actionReason
	}
	return *entry, nil
}

func (s *fakeStore) UpdateRequestStatus(ctx context.Context, requestID int64, overall wfh.Status, notification wfh.NotificationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return wfh.ErrRequestNotFound
	}
	request.OverallStatus = overall
	request.LastNotificationStatus = request.NotificationStatus
	request.NotificationStatus = notification
	request.ModifiedAt = time.Now()
	return nil
}

func (s *fakeStore) LockRequester(ctx context.Context, requesterID int64) error {
	return nil
}

func (s *fakeStore) HasActiveEntryOnDates(ctx context.Context, requesterID int64, dates []time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		request := s.requests[entry.RequestID]
		if request.RequesterID != requesterID {
			continue
		}
		switch entry.Status {
		case wfh.StatusPending, wfh.StatusApproved, wfh.StatusPendingWithdrawal:
		default:
			continue
		}
		for _, date := range dates {
			if entry.EntryDate.Equal(date) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *fakeStore) ListPendingEntriesThrough(ctx context.Context, through time.Time) ([]wfh.WFHEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []wfh.WFHEntry
	for _, entry := range s.entries {
		if entry.Status == wfh.StatusPending && !entry.EntryDate.After(through) {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (s *fakeStore) list(match func(*wfh.WFHRequest) bool) []wfh.WFHRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []wfh.WFHRequest
	for _, request := range s.requests {
		if match(request) {
			out = append(out, s.snapshot(request))
		}
	}
	return out
}

func (s *fakeStore) ListByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return s.list(func(r *wfh.WFHRequest) bool { return r.RequesterID == staffID }), nil
}

func (s *fakeStore) ListApprovedByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return s.list(func(r *wfh.WFHRequest) bool {
		return r.RequesterID == staffID && r.OverallStatus == wfh.StatusApproved
	}), nil
}

func (s *fakeStore) ListByManager(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return s.list(func(r *wfh.WFHRequest) bool { return r.ReportingManager == staffID }), nil
}

func (s *fakeStore) ListByStaff(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return s.list(func(r *wfh.WFHRequest) bool {
		return r.RequesterID == staffID || r.ReportingManager == staffID
	}), nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]wfh.WFHRequest, error) {
	return s.list(func(*wfh.WFHRequest) bool { return true }), nil
}

func (s *fakeStore) ListByDepartment(ctx context.Context, dept string) ([]wfh.WFHRequest, error) {
	return s.list(func(r *wfh.WFHRequest) bool { return r.Department == dept }), nil
}

func (s *fakeStore) ListByDate(ctx context.Context, date time.Time) ([]wfh.WFHRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]struct{})
	var out []wfh.WFHRequest
	for _, entry := range s.entries {
		if !entry.EntryDate.Equal(date) {
			continue
		}
		if _, ok := seen[entry.RequestID]; ok {
			continue
		}
		seen[entry.RequestID] = struct{}{}
		out = append(out, s.snapshot(s.requests[entry.RequestID]))
	}
	return out, nil
}

func (s *fakeStore) CountUnseen(ctx context.Context, staffID int64) (int64, error) {
	return 0, nil
}

func (s *fakeStore) ListFeed(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return nil, nil
}

func (s *fakeStore) MarkSeen(ctx context.Context, requestIDs []int64) error {
	return nil
}

func (s *fakeStore) Append(ctx context.Context, record wfh.AuditRecord) (wfh.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.AuditID = s.id()
	record.CreatedAt = time.Now()
	s.audits = append(s.audits, record)
	return record, nil
}

func (s *fakeStore) ListByRequest(ctx context.Context, requestID int64) ([]wfh.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []wfh.AuditRecord
	for _, record := range s.audits {
		if record.RequestID == requestID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *fakeStore) auditCount(requestID int64) int {
	records, _ := s.ListByRequest(context.Background(), requestID)
	return len(records)
}

// fakeDirectory is an in-memory employee directory.
type fakeDirectory struct {
	employees map[int64]employee.Employee
}

func (d *fakeDirectory) GetByStaffID(ctx context.Context, staffID int64) (employee.Employee, error) {
	emp, ok := d.employees[staffID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (d *fakeDirectory) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range d.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (d *fakeDirectory) ListByManager(ctx context.Context, managerID int64) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range d.employees {
		if emp.ReportingManager == managerID && emp.StaffID != managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (d *fakeDirectory) UpdateReportingManager(ctx context.Context, staffID, managerID int64) error {
	emp, ok := d.employees[staffID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.ReportingManager = managerID
	d.employees[staffID] = emp
	return nil
}

func (d *fakeDirectory) GetCredentialHash(ctx context.Context, staffID int64) (string, error) {
	return "", employee.ErrCredentialNotFound
}

// fakeNotifier records every event handed to it.
type fakeNotifier struct {
	mu     sync.Mutex
	events []fakeEvent
}

type fakeEvent struct {
	staffID int64
	event   string
}

func (n *fakeNotifier) Notify(staffID int64, event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, fakeEvent{staffID: staffID, event: event})
}

func (n *fakeNotifier) eventsFor(staffID int64) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, ev := range n.events {
		if ev.staffID == staffID {
			out = append(out, ev.event)
		}
	}
	return out
}
