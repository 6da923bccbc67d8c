package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wfhRequestRepositoryImpl struct {
	db *database.DB
}

func NewWFHRequestRepository(db *database.DB) wfh.RequestRepository {
	return &wfhRequestRepositoryImpl{db: db}
}

const requestColumns = `
	request_id, requester_id, reporting_manager, department, overall_status,
	notification_status, last_notification_status, created_at, modified_at`

const entryColumns = `
	entry_id, request_id, entry_date, duration, reason, status, action_reason`

// Notification-status sets that make a request show up in someone's feed.
// Self-managed requests never appear; the requester acted on themselves.
const (
	requesterFeedStatuses = `('Edited', 'Self-Withdrawn', 'Acknowledged', 'Auto Rejected', 'Withdrawn')`
	managerFeedStatuses   = `('Delivered', 'Cancelled', 'Withdrawn', 'Edited', 'Self-Withdrawn', 'Acknowledged', 'Auto Rejected')`
)

const feedPredicate = `
	requester_id <> reporting_manager
	AND ((requester_id = $1 AND notification_status IN ` + requesterFeedStatuses + `)
	  OR (reporting_manager = $1 AND notification_status IN ` + managerFeedStatuses + `))`

func (r *wfhRequestRepositoryImpl) Create(ctx context.Context, request wfh.WFHRequest) (wfh.WFHRequest, error) {
	q := r.db.Querier(ctx)

	err := q.QueryRow(ctx, `
		INSERT INTO wfh_requests (requester_id, reporting_manager, department, overall_status,
			notification_status, last_notification_status, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING request_id
	`, request.RequesterID, request.ReportingManager, request.Department, request.OverallStatus,
		request.NotificationStatus, request.LastNotificationStatus, request.CreatedAt, request.ModifiedAt,
	).Scan(&request.RequestID)
	if err != nil {
		return wfh.WFHRequest{}, err
	}

	for i := range request.Entries {
		entry := &request.Entries[i]
		entry.RequestID = request.RequestID
		err := q.QueryRow(ctx, `
			INSERT INTO wfh_entries (request_id, entry_date, duration, reason, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING entry_id
		`, entry.RequestID, entry.EntryDate, entry.Duration, entry.Reason, entry.Status).Scan(&entry.EntryID)
		if err != nil {
			return wfh.WFHRequest{}, err
		}
	}
	return request, nil
}

func (r *wfhRequestRepositoryImpl) GetByID(ctx context.Context, requestID int64) (wfh.WFHRequest, error) {
	q := r.db.Querier(ctx)

	var request wfh.WFHRequest
	err := q.QueryRow(ctx, `SELECT `+requestColumns+` FROM wfh_requests WHERE request_id = $1`, requestID).Scan(
		&request.RequestID, &request.RequesterID, &request.ReportingManager, &request.Department,
		&request.OverallStatus, &request.NotificationStatus, &request.LastNotificationStatus,
		&request.CreatedAt, &request.ModifiedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return wfh.WFHRequest{}, wfh.ErrRequestNotFound
	}
	if err != nil {
		return wfh.WFHRequest{}, err
	}

	request.Entries, err = r.ListEntries(ctx, requestID)
	if err != nil {
		return wfh.WFHRequest{}, err
	}
	return request, nil
}

func (r *wfhRequestRepositoryImpl) GetEntry(ctx context.Context, requestID, entryID int64) (wfh.WFHEntry, error) {
	q := r.db.Querier(ctx)

	var entry wfh.WFHEntry
	err := q.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM wfh_entries WHERE entry_id = $1 AND request_id = $2
	`, entryID, requestID).Scan(
		&entry.EntryID, &entry.RequestID, &entry.EntryDate, &entry.Duration,
		&entry.Reason, &entry.Status, &entry.ActionReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return wfh.WFHEntry{}, wfh.ErrEntryNotFound
	}
	if err != nil {
		return wfh.WFHEntry{}, err
	}
	return entry, nil
}

func (r *wfhRequestRepositoryImpl) ListEntries(ctx context.Context, requestID int64) ([]wfh.WFHEntry, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT `+entryColumns+` FROM wfh_entries WHERE request_id = $1 ORDER BY entry_date
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *wfhRequestRepositoryImpl) UpdateEntryStatus(ctx context.Context, entryID int64, from, to wfh.Status, actionReason *string) (wfh.WFHEntry, error) {
	q := r.db.Querier(ctx)

	// Compare-and-swap: the WHERE clause on the current status is what
	// serializes concurrent writers on one entry.
	var entry wfh.WFHEntry
	err := q.QueryRow(ctx, `
		UPDATE wfh_entries
		SET status = $3, action_reason = COALESCE($4, action_reason)
		WHERE entry_id = $1 AND status = $2
		RETURNING `+entryColumns+`
	`, entryID, from, to, actionReason).Scan(
		&entry.EntryID, &entry.RequestID, &entry.EntryDate, &entry.Duration,
		&entry.Reason, &entry.Status, &entry.ActionReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return wfh.WFHEntry{}, wfh.ErrInvalidState
	}
	if err != nil {
		return wfh.WFHEntry{}, err
	}
	return entry, nil
}

func (r *wfhRequestRepositoryImpl) UpdateRequestStatus(ctx context.Context, requestID int64, overall wfh.Status, notification wfh.NotificationStatus) error {
	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx, `
		UPDATE wfh_requests
		SET overall_status = $2,
			last_notification_status = notification_status,
			notification_status = $3,
			modified_at = NOW()
		WHERE request_id = $1
	`, requestID, overall, notification)
	return err
}

func (r *wfhRequestRepositoryImpl) LockRequester(ctx context.Context, requesterID int64) error {
	q := r.db.Querier(ctx)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, requesterID)
	return err
}

func (r *wfhRequestRepositoryImpl) HasActiveEntryOnDates(ctx context.Context, requesterID int64, dates []time.Time) (bool, error) {
	q := r.db.Querier(ctx)

	dateStrs := make([]string, 0, len(dates))
	for _, date := range dates {
		dateStrs = append(dateStrs, date.Format("2006-01-02"))
	}

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM wfh_entries e
			JOIN wfh_requests r ON r.request_id = e.request_id
			WHERE r.requester_id = $1
			  AND e.entry_date = ANY($2::date[])
			  AND e.status IN ('Pending', 'Approved', 'Pending Withdrawal')
		)
	`, requesterID, dateStrs).Scan(&exists)
	return exists, err
}

func (r *wfhRequestRepositoryImpl) ListPendingEntriesThrough(ctx context.Context, through time.Time) ([]wfh.WFHEntry, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT `+entryColumns+` FROM wfh_entries
		WHERE status = 'Pending' AND entry_date <= $1
		ORDER BY entry_date
	`, through)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *wfhRequestRepositoryImpl) ListByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE requester_id = $1`, staffID)
}

func (r *wfhRequestRepositoryImpl) ListApprovedByRequester(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE requester_id = $1 AND overall_status = 'Approved'`, staffID)
}

func (r *wfhRequestRepositoryImpl) ListByManager(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE reporting_manager = $1`, staffID)
}

func (r *wfhRequestRepositoryImpl) ListByStaff(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE requester_id = $1 OR reporting_manager = $1`, staffID)
}

func (r *wfhRequestRepositoryImpl) ListAll(ctx context.Context) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, ``)
}

func (r *wfhRequestRepositoryImpl) ListByDepartment(ctx context.Context, dept string) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE department = $1`, dept)
}

func (r *wfhRequestRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `
		WHERE request_id IN (SELECT request_id FROM wfh_entries WHERE entry_date = $1)
	`, date)
}

func (r *wfhRequestRepositoryImpl) CountUnseen(ctx context.Context, staffID int64) (int64, error) {
	q := r.db.Querier(ctx)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM wfh_requests WHERE `+feedPredicate, staffID).Scan(&count)
	return count, err
}

func (r *wfhRequestRepositoryImpl) ListFeed(ctx context.Context, staffID int64) ([]wfh.WFHRequest, error) {
	return r.listRequests(ctx, `WHERE `+feedPredicate, staffID)
}

func (r *wfhRequestRepositoryImpl) MarkSeen(ctx context.Context, requestIDs []int64) error {
	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx, `
		UPDATE wfh_requests
		SET last_notification_status = notification_status, notification_status = 'Seen'
		WHERE request_id = ANY($1)
	`, requestIDs)
	return err
}

// listRequests runs one query for the matching requests and a second for
// all their entries, stitching them together in memory.
func (r *wfhRequestRepositoryImpl) listRequests(ctx context.Context, where string, args ...interface{}) ([]wfh.WFHRequest, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT `+requestColumns+` FROM wfh_requests `+where+` ORDER BY created_at DESC, request_id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []wfh.WFHRequest
	index := make(map[int64]int)
	var ids []int64
	for rows.Next() {
		var request wfh.WFHRequest
		err := rows.Scan(
			&request.RequestID, &request.RequesterID, &request.ReportingManager, &request.Department,
			&request.OverallStatus, &request.NotificationStatus, &request.LastNotificationStatus,
			&request.CreatedAt, &request.ModifiedAt,
		)
		if err != nil {
			return nil, err
		}
		index[request.RequestID] = len(requests)
		ids = append(ids, request.RequestID)
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return requests, nil
	}

	entryRows, err := q.Query(ctx, `
		SELECT `+entryColumns+` FROM wfh_entries WHERE request_id = ANY($1) ORDER BY entry_date
	`, ids)
	if err != nil {
		return nil, err
	}
	defer entryRows.Close()

	entries, err := scanEntries(entryRows)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		i := index[entry.RequestID]
		requests[i].Entries = append(requests[i].Entries, entry)
	}
	return requests, nil
}

func scanEntries(rows pgx.Rows) ([]wfh.WFHEntry, error) {
	var entries []wfh.WFHEntry
	for rows.Next() {
		var entry wfh.WFHEntry
		err := rows.Scan(
			&entry.EntryID, &entry.RequestID, &entry.EntryDate, &entry.Duration,
			&entry.Reason, &entry.Status, &entry.ActionReason,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
