// Package repository implements domain repository interfaces using SQLite.
// Every governed write runs in a single transaction together with its audit
// entry: if the audit insert fails, the write fails with it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"courtside/internal/domain"
)

func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &domain.ConflictError{Message: "resource already exists"}
	}
	return err
}

// insertAuditTx persists the audit entry inside the caller's transaction.
// A nil entry is a no-op (used when a diff turned out empty).
func insertAuditTx(ctx context.Context, tx *sql.Tx, e *domain.AuditEntry) error {
	if e == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO audit_history (id, table_name, record_id, changed_by, changed_at, change_type, diff)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TableName, e.RecordID, e.ChangedBy, e.ChangedAt, string(e.Kind), string(e.Diff))
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
