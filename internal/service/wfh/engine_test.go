package wfh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixed clock is a Monday morning. The first valid entry date from
// here is Wednesday (strictly after Tuesday, the next working day).
var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

var (
	staffActor   = employee.Actor{StaffID: 100, Role: employee.RoleStaff}
	peerActor    = employee.Actor{StaffID: 101, Role: employee.RoleStaff}
	managerActor = employee.Actor{StaffID: 200, Role: employee.RoleManager}
	selfActor    = employee.Actor{StaffID: 500, Role: employee.RoleManager}
)

func newTestEngine(t *testing.T) (*Engine, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	directory := &fakeDirectory{employees: map[int64]employee.Employee{
		100: {StaffID: 100, FirstName: "Mira", Dept: "Engineering", Position: "Backend Engineer", ReportingManager: 200, RoleCode: employee.RoleCodeStaff},
		101: {StaffID: 101, FirstName: "Jon", Dept: "Engineering", Position: "Backend Engineer", ReportingManager: 200, RoleCode: employee.RoleCodeStaff},
		200: {StaffID: 200, FirstName: "Dian", Dept: "Engineering", Position: "Engineering Manager", ReportingManager: 300, RoleCode: employee.RoleCodeManager},
		300: {StaffID: 300, FirstName: "Ary", Dept: "Management", Position: "MD", ReportingManager: 300, RoleCode: employee.RoleCodeDirector},
		500: {StaffID: 500, FirstName: "Sol", Dept: "Design", Position: "Design Lead", ReportingManager: 500, RoleCode: employee.RoleCodeManager},
	}}
	engine := NewEngine(&fakeTx{}, store, store, directory, notifier)
	engine.clock = func() time.Time { return testNow }
	return engine, store, notifier
}

func submitDates(t *testing.T, engine *Engine, actor employee.Actor, dates ...string) wfh.WFHRequest {
	t.Helper()
	in := wfh.SubmitRequest{}
	for _, date := range dates {
		in.Entries = append(in.Entries, wfh.EntryInput{
			EntryDate: date,
			Duration:  string(wfh.DurationFullDay),
			Reason:    "Focus work",
		})
	}
	request, err := engine.Submit(context.Background(), actor, in)
	require.NoError(t, err)
	return request
}

func TestEngine_Submit_Success(t *testing.T) {
	engine, store, notifier := newTestEngine(t)

	request := submitDates(t, engine, staffActor, "2026-03-04", "2026-03-05")

	assert.Equal(t, int64(100), request.RequesterID)
	assert.Equal(t, int64(200), request.ReportingManager)
	assert.Equal(t, "Engineering", request.Department)
	assert.Equal(t, wfh.StatusPending, request.OverallStatus)
	assert.Equal(t, wfh.NotificationDelivered, request.NotificationStatus)
	require.Len(t, request.Entries, 2)
	for _, entry := range request.Entries {
		assert.Equal(t, wfh.StatusPending, entry.Status)
	}

	// One request-level audit row plus one per entry.
	assert.Equal(t, 3, store.auditCount(request.RequestID))
	assert.Equal(t, []string{"wfh_request_submitted"}, notifier.eventsFor(200))
}

func TestEngine_Submit_WeekendDateRejected(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	_, err := engine.Submit(context.Background(), staffActor, wfh.SubmitRequest{
		Entries: []wfh.EntryInput{
			{EntryDate: "2026-03-07", Duration: "Full Day", Reason: "Focus work"},
		},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "entries[0].entry_date")
	assert.Empty(t, store.requests)
}

func TestEngine_Submit_LeadTime(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	// Tuesday is the next working day after a Monday submission, so both
	// Tuesday and anything before it fail; Wednesday is the first valid day.
	for _, date := range []string{"2026-03-02", "2026-03-03"} {
		_, err := engine.Submit(context.Background(), staffActor, wfh.SubmitRequest{
			Entries: []wfh.EntryInput{{EntryDate: date, Duration: "AM", Reason: "Focus work"}},
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, "date %s", date)
	}

	submitDates(t, engine, staffActor, "2026-03-04")
}

func TestEngine_Submit_FridayLeadTimeSkipsWeekend(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	engine.clock = func() time.Time {
		return time.Date(2026, time.March, 6, 9, 0, 0, 0, time.UTC) // Friday
	}

	// Monday is the next working day, so Monday itself is too soon.
	_, err := engine.Submit(context.Background(), staffActor, wfh.SubmitRequest{
		Entries: []wfh.EntryInput{{EntryDate: "2026-03-09", Duration: "Full Day", Reason: "Focus work"}},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	submitDates(t, engine, staffActor, "2026-03-10")
}

func TestEngine_Submit_DuplicateDateWithinSubmission(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Submit(context.Background(), staffActor, wfh.SubmitRequest{
		Entries: []wfh.EntryInput{
			{EntryDate: "2026-03-04", Duration: "AM", Reason: "Focus work"},
			{EntryDate: "2026-03-04", Duration: "PM", Reason: "Focus work"},
		},
	})
	assert.ErrorIs(t, err, wfh.ErrDuplicateRequest)
}

func TestEngine_Submit_DuplicateActiveEntryIsAllOrNothing(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	submitDates(t, engine, staffActor, "2026-03-04")

	// The second submission shares one date with the first; nothing from
	// it may persist, including the non-conflicting date.
	_, err := engine.Submit(context.Background(), staffActor, wfh.SubmitRequest{
		Entries: []wfh.EntryInput{
			{EntryDate: "2026-03-04", Duration: "Full Day", Reason: "Focus work"},
			{EntryDate: "2026-03-05", Duration: "Full Day", Reason: "Focus work"},
		},
	})
	assert.ErrorIs(t, err, wfh.ErrDuplicateRequest)
	assert.Len(t, store.requests, 1)
	assert.Len(t, store.entries, 1)
}

func TestEngine_Submit_CancelledDateCanBeRebooked(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first := submitDates(t, engine, staffActor, "2026-03-04")
	_, err := engine.Cancel(ctx, staffActor, first.RequestID, first.Entries[0].EntryID)
	require.NoError(t, err)

	submitDates(t, engine, staffActor, "2026-03-04")
}

func TestEngine_Submit_SelfManagedIsAutoApproved(t *testing.T) {
	engine, _, notifier := newTestEngine(t)

	request := submitDates(t, engine, selfActor, "2026-03-04")

	assert.Equal(t, wfh.StatusApproved, request.OverallStatus)
	require.Len(t, request.Entries, 1)
	assert.Equal(t, wfh.StatusApproved, request.Entries[0].Status)
	assert.Empty(t, notifier.eventsFor(500))
}

func TestEngine_Approve_Success(t *testing.T) {
	engine, store, notifier := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	updated, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusApproved, updated.Status)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusApproved, stored.OverallStatus)
	assert.Equal(t, wfh.NotificationEdited, stored.NotificationStatus)

	// Submit wrote 2 rows; the approval adds an entry row and an
	// overall-status row.
	assert.Equal(t, 4, store.auditCount(request.RequestID))
	assert.Equal(t, []string{"wfh_request_approve"}, notifier.eventsFor(100))
}

func TestEngine_Approve_IdempotentRetry(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	_, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)
	audits := store.auditCount(request.RequestID)

	// The retry succeeds, changes nothing and writes no audit row.
	updated, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusApproved, updated.Status)
	assert.Equal(t, audits, store.auditCount(request.RequestID))
}

func TestEngine_Reject_RequiresReason(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")

	_, err := engine.Reject(ctx, managerActor, request.RequestID, request.Entries[0].EntryID, "  ")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "action_reason")
}

func TestEngine_Reject_RecordsActionReason(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")

	updated, err := engine.Reject(ctx, managerActor, request.RequestID, request.Entries[0].EntryID, "Sprint review on site")
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusRejected, updated.Status)
	require.NotNil(t, updated.ActionReason)
	assert.Equal(t, "Sprint review on site", *updated.ActionReason)
}

func TestEngine_ApproveThenReject_IsInvalidState(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	_, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)

	_, err = engine.Reject(ctx, managerActor, request.RequestID, entry.EntryID, "Changed my mind")
	assert.ErrorIs(t, err, wfh.ErrInvalidState)
}

func TestEngine_Transition_Unauthorized(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	// Only the reporting manager reviews.
	_, err := engine.Approve(ctx, peerActor, request.RequestID, entry.EntryID)
	assert.ErrorIs(t, err, wfh.ErrUnauthorized)
	_, err = engine.Approve(ctx, staffActor, request.RequestID, entry.EntryID)
	assert.ErrorIs(t, err, wfh.ErrUnauthorized)

	// Only the requester cancels.
	_, err = engine.Cancel(ctx, managerActor, request.RequestID, entry.EntryID)
	assert.ErrorIs(t, err, wfh.ErrUnauthorized)
}

func TestEngine_Cancel_ByRequester(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")

	updated, err := engine.Cancel(ctx, staffActor, request.RequestID, request.Entries[0].EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusCancelled, updated.Status)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusCancelled, stored.OverallStatus)
	assert.Equal(t, wfh.NotificationCancelled, stored.NotificationStatus)
}

func TestEngine_RevokeApproved_ByRequester(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	_, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)

	updated, err := engine.RevokeApproved(ctx, staffActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusWithdrawn, updated.Status)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.NotificationSelfWithdrawn, stored.NotificationStatus)
}

func TestEngine_WithdrawalFlow(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	_, err := engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)

	updated, err := engine.RequestWithdrawal(ctx, managerActor, request.RequestID, entry.EntryID, "Coverage needed on site")
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusPendingWithdrawal, updated.Status)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusPendingWithdrawal, stored.OverallStatus)
	assert.Equal(t, wfh.NotificationWithdrawn, stored.NotificationStatus)

	updated, err = engine.AcknowledgeWithdrawal(ctx, managerActor, request.RequestID, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusWithdrawn, updated.Status)

	stored, err = engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusWithdrawn, stored.OverallStatus)
	assert.Equal(t, wfh.NotificationAcknowledged, stored.NotificationStatus)
}

func TestEngine_Withdrawal_SelfManagedNotAllowed(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, selfActor, "2026-03-04")

	_, err := engine.RequestWithdrawal(ctx, selfActor, request.RequestID, request.Entries[0].EntryID, "Plans changed")
	assert.ErrorIs(t, err, wfh.ErrUnauthorized)

	// The self-managed path out of Approved is a direct revoke.
	updated, err := engine.RevokeApproved(ctx, selfActor, request.RequestID, request.Entries[0].EntryID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusWithdrawn, updated.Status)
}

func TestEngine_OverallStatus_PartialReviewStaysPending(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04", "2026-03-05")

	_, err := engine.Approve(ctx, managerActor, request.RequestID, request.Entries[0].EntryID)
	require.NoError(t, err)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusPending, stored.OverallStatus)
}

func TestEngine_OverallStatus_MixedOutcomesAreReviewed(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04", "2026-03-05")

	_, err := engine.Approve(ctx, managerActor, request.RequestID, request.Entries[0].EntryID)
	require.NoError(t, err)
	_, err = engine.Reject(ctx, managerActor, request.RequestID, request.Entries[1].EntryID, "Need you in the office")
	require.NoError(t, err)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, wfh.StatusReviewed, stored.OverallStatus)
}

func TestEngine_Concurrent_ApproveVersusReject(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	entry := request.Entries[0]

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = engine.Approve(ctx, managerActor, request.RequestID, entry.EntryID)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = engine.Reject(ctx, managerActor, request.RequestID, entry.EntryID, "Need you on site")
	}()
	wg.Wait()

	// Exactly one writer wins; the loser observes an invalid state.
	winners, losers := 0, 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, wfh.ErrInvalidState)
			losers++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Contains(t, []wfh.Status{wfh.StatusApproved, wfh.StatusRejected}, stored.OverallStatus)
}

func TestEngine_AutoRejectDue(t *testing.T) {
	engine, _, notifier := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04", "2026-03-10")

	// Tuesday the 3rd is the review deadline for the Wednesday entry; the
	// entry for the 10th is still within its review window.
	count, err := engine.AutoRejectDue(ctx, time.Date(2026, time.March, 3, 0, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := engine.GetByID(ctx, request.RequestID)
	require.NoError(t, err)
	byDate := make(map[string]wfh.Status)
	for _, entry := range stored.Entries {
		byDate[entry.EntryDate.Format("2006-01-02")] = entry.Status
	}
	assert.Equal(t, wfh.StatusAutoRejected, byDate["2026-03-04"])
	assert.Equal(t, wfh.StatusPending, byDate["2026-03-10"])
	assert.Equal(t, wfh.StatusPending, stored.OverallStatus)

	// The system transition is attributed to actor 0 in the audit trail.
	records, err := engine.AuditTrail(ctx, request.RequestID)
	require.NoError(t, err)
	var systemRows int
	for _, record := range records {
		if record.ActorID == systemActorID {
			systemRows++
			assert.Equal(t, wfh.StatusAutoRejected, record.Status)
		}
	}
	assert.Equal(t, 1, systemRows)

	assert.Contains(t, notifier.eventsFor(100), "wfh_request_auto_reject")
	assert.Contains(t, notifier.eventsFor(200), "wfh_request_auto_reject")

	// A second sweep finds nothing new.
	count, err = engine.AutoRejectDue(ctx, time.Date(2026, time.March, 3, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_AutoRejectDue_SkipsSettledEntries(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	request := submitDates(t, engine, staffActor, "2026-03-04")
	_, err := engine.Approve(ctx, managerActor, request.RequestID, request.Entries[0].EntryID)
	require.NoError(t, err)

	count, err := engine.AutoRejectDue(ctx, time.Date(2026, time.March, 3, 0, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_AuditTrail_UnknownRequest(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.AuditTrail(context.Background(), 9999)
	assert.ErrorIs(t, err, wfh.ErrRequestNotFound)
}

func TestEngine_GetByID_NotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, wfh.ErrRequestNotFound)
}
