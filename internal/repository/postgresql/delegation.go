package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/delegation"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type delegationRepositoryImpl struct {
	db *database.DB
}

func NewDelegationRepository(db *database.DB) delegation.Repository {
	return &delegationRepositoryImpl{db: db}
}

const delegationColumns = `
	delegate_id, delegate_from, delegate_to, start_date, end_date, reason,
	status, notification_status, active, affected_staff, created_at`

func (r *delegationRepositoryImpl) Create(ctx context.Context, d delegation.Delegation) (delegation.Delegation, error) {
	q := r.db.Querier(ctx)

	err := q.QueryRow(ctx, `
		INSERT INTO delegations (delegate_from, delegate_to, start_date, end_date, reason,
			status, notification_status, active, affected_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING delegate_id
	`, d.DelegateFrom, d.DelegateTo, d.StartDate, d.EndDate, d.Reason,
		d.Status, d.NotificationStatus, d.Active, d.AffectedStaff, d.CreatedAt,
	).Scan(&d.DelegateID)
	if err != nil {
		return delegation.Delegation{}, err
	}
	return d, nil
}

func (r *delegationRepositoryImpl) GetByID(ctx context.Context, delegateID int64) (delegation.Delegation, error) {
	q := r.db.Querier(ctx)

	var d delegation.Delegation
	err := q.QueryRow(ctx, `SELECT `+delegationColumns+` FROM delegations WHERE delegate_id = $1`, delegateID).Scan(
		&d.DelegateID, &d.DelegateFrom, &d.DelegateTo, &d.StartDate, &d.EndDate, &d.Reason,
		&d.Status, &d.NotificationStatus, &d.Active, &d.AffectedStaff, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	if err != nil {
		return delegation.Delegation{}, err
	}
	return d, nil
}

func (r *delegationRepositoryImpl) ListByStaff(ctx context.Context, staffID int64) ([]delegation.Delegation, error) {
	return r.listDelegations(ctx, `WHERE delegate_from = $1 OR delegate_to = $1`, staffID)
}

func (r *delegationRepositoryImpl) UpdateStatus(ctx context.Context, delegateID int64, from, to delegation.Status, notification delegation.NotificationStatus) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		UPDATE delegations
		SET status = $3, notification_status = $4
		WHERE delegate_id = $1 AND status = $2
	`, delegateID, from, to, notification)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return delegation.ErrInvalidState
	}
	return nil
}

func (r *delegationRepositoryImpl) SetActive(ctx context.Context, delegateID int64, active bool, affectedStaff []int64) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		UPDATE delegations SET active = $2, affected_staff = $3 WHERE delegate_id = $1
	`, delegateID, active, affectedStaff)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return delegation.ErrDelegationNotFound
	}
	return nil
}

func (r *delegationRepositoryImpl) ListAcceptedStarting(ctx context.Context, asOf time.Time) ([]delegation.Delegation, error) {
	return r.listDelegations(ctx, `
		WHERE status = 'accepted' AND active = FALSE AND start_date <= $1 AND end_date >= $1
	`, asOf)
}

func (r *delegationRepositoryImpl) ListActiveEnded(ctx context.Context, asOf time.Time) ([]delegation.Delegation, error) {
	return r.listDelegations(ctx, `WHERE active = TRUE AND end_date < $1`, asOf)
}

func (r *delegationRepositoryImpl) AppendHistory(ctx context.Context, h delegation.StatusHistory) (delegation.StatusHistory, error) {
	q := r.db.Querier(ctx)

	err := q.QueryRow(ctx, `
		INSERT INTO delegation_status_history (delegate_id, status, actor_id)
		VALUES ($1, $2, $3)
		RETURNING history_id, created_at
	`, h.DelegateID, h.Status, h.ActorID).Scan(&h.HistoryID, &h.CreatedAt)
	if err != nil {
		return delegation.StatusHistory{}, err
	}
	return h, nil
}

func (r *delegationRepositoryImpl) ListHistory(ctx context.Context, delegateID int64) ([]delegation.StatusHistory, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT history_id, delegate_id, status, actor_id, created_at
		FROM delegation_status_history
		WHERE delegate_id = $1
		ORDER BY history_id
	`, delegateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []delegation.StatusHistory
	for rows.Next() {
		var h delegation.StatusHistory
		if err := rows.Scan(&h.HistoryID, &h.DelegateID, &h.Status, &h.ActorID, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *delegationRepositoryImpl) CountUnseen(ctx context.Context, staffID int64) (int64, error) {
	q := r.db.Querier(ctx)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM delegations
		WHERE (delegate_to = $1 AND notification_status = 'pending')
		   OR (delegate_from = $1 AND notification_status IN ('accepted', 'rejected'))
	`, staffID).Scan(&count)
	return count, err
}

func (r *delegationRepositoryImpl) MarkSeen(ctx context.Context, delegateIDs []int64) error {
	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx, `
		UPDATE delegations SET notification_status = 'seen' WHERE delegate_id = ANY($1)
	`, delegateIDs)
	return err
}

func (r *delegationRepositoryImpl) listDelegations(ctx context.Context, where string, args ...interface{}) ([]delegation.Delegation, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT `+delegationColumns+` FROM delegations `+where+` ORDER BY created_at DESC, delegate_id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var delegations []delegation.Delegation
	for rows.Next() {
		var d delegation.Delegation
		err := rows.Scan(
			&d.DelegateID, &d.DelegateFrom, &d.DelegateTo, &d.StartDate, &d.EndDate, &d.Reason,
			&d.Status, &d.NotificationStatus, &d.Active, &d.AffectedStaff, &d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		delegations = append(delegations, d)
	}
	return delegations, rows.Err()
}
