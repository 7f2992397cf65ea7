package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"courtside/internal/domain"
)

// AuditRepo reads the audit log. Writes happen only through the governed
// repositories' transactions; there is no update or delete path.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.TableName != nil {
		where += ` AND table_name = ?`
		args = append(args, *filter.TableName)
	}
	if filter.RecordID != nil {
		where += ` AND record_id = ?`
		args = append(args, *filter.RecordID)
	}
	if filter.ChangedBy != nil {
		where += ` AND changed_by = ?`
		args = append(args, *filter.ChangedBy)
	}
	if filter.Kind != nil {
		where += ` AND change_type = ?`
		args = append(args, string(*filter.Kind))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_history`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, table_name, record_id, changed_by, changed_at, change_type, diff
		 FROM audit_history`+where+` ORDER BY changed_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var kind string
		var diff sql.NullString
		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &e.ChangedBy, &e.ChangedAt, &kind, &diff); err != nil {
			return nil, 0, err
		}
		e.Kind = domain.ChangeKind(kind)
		if diff.Valid {
			e.Diff = json.RawMessage(diff.String)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
