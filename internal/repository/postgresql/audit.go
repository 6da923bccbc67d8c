package postgresql

import (
	"context"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) wfh.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Append(ctx context.Context, record wfh.AuditRecord) (wfh.AuditRecord, error) {
	q := r.db.Querier(ctx)

	err := q.QueryRow(ctx, `
		INSERT INTO wfh_audit_trail (request_id, entry_id, requester_id, reporting_manager,
			department, entry_date, reason, duration, status, action_reason, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING audit_id, created_at
	`, record.RequestID, record.EntryID, record.RequesterID, record.ReportingManager,
		record.Department, record.EntryDate, record.Reason, record.Duration,
		record.Status, record.ActionReason, record.ActorID,
	).Scan(&record.AuditID, &record.CreatedAt)
	if err != nil {
		return wfh.AuditRecord{}, err
	}
	return record, nil
}

func (r *auditRepositoryImpl) ListByRequest(ctx context.Context, requestID int64) ([]wfh.AuditRecord, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT audit_id, request_id, entry_id, requester_id, reporting_manager,
			department, entry_date, reason, duration, status, action_reason, actor_id, created_at
		FROM wfh_audit_trail
		WHERE request_id = $1
		ORDER BY audit_id
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []wfh.AuditRecord
	for rows.Next() {
		var record wfh.AuditRecord
		err := rows.Scan(
			&record.AuditID, &record.RequestID, &record.EntryID, &record.RequesterID,
			&record.ReportingManager, &record.Department, &record.EntryDate, &record.Reason,
			&record.Duration, &record.Status, &record.ActionReason, &record.ActorID, &record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
