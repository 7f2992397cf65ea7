// Package audit computes structural diffs for governed mutations and builds
// the audit entries persisted alongside them. The diff payload is
// self-describing: the change kind selects the shape (full record for
// insert/delete, changed fields for update).
package audit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"courtside/internal/domain"
)

// FieldChange holds the before and after values of one changed field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// insertPayload and deletePayload carry the full record; updatePayload
// carries only the fields whose values differ.
type recordPayload struct {
	Kind   domain.ChangeKind `json:"kind"`
	Record map[string]any    `json:"record"`
}

type updatePayload struct {
	Kind   domain.ChangeKind      `json:"kind"`
	Fields map[string]FieldChange `json:"fields"`
}

// Recorder builds audit entries from entity snapshots.
type Recorder struct {
	now func() time.Time
}

// NewRecorder creates a Recorder using wall-clock time.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Insert builds the audit entry for a newly created record. The payload is
// the full new state.
func (r *Recorder) Insert(table, recordID, changedBy string, newState any) (*domain.AuditEntry, error) {
	record, err := Snapshot(newState)
	if err != nil {
		return nil, err
	}
	return r.entry(table, recordID, changedBy, domain.ChangeInsert, recordPayload{
		Kind:   domain.ChangeInsert,
		Record: record,
	})
}

// Update builds the audit entry for a modified record. The payload maps each
// changed field to its old and new value. Returns (nil, nil) when no field
// differs; callers treat that as "nothing to write".
func (r *Recorder) Update(table, recordID, changedBy string, oldState, newState any) (*domain.AuditEntry, error) {
	oldRecord, err := Snapshot(oldState)
	if err != nil {
		return nil, err
	}
	newRecord, err := Snapshot(newState)
	if err != nil {
		return nil, err
	}
	fields := Diff(oldRecord, newRecord)
	if len(fields) == 0 {
		return nil, nil
	}
	return r.entry(table, recordID, changedBy, domain.ChangeUpdate, updatePayload{
		Kind:   domain.ChangeUpdate,
		Fields: fields,
	})
}

// Delete builds the audit entry for a removed record. The payload is the
// full prior state, so the entry remains meaningful after the record is gone.
func (r *Recorder) Delete(table, recordID, changedBy string, oldState any) (*domain.AuditEntry, error) {
	record, err := Snapshot(oldState)
	if err != nil {
		return nil, err
	}
	return r.entry(table, recordID, changedBy, domain.ChangeDelete, recordPayload{
		Kind:   domain.ChangeDelete,
		Record: record,
	})
}

func (r *Recorder) entry(table, recordID, changedBy string, kind domain.ChangeKind, payload any) (*domain.AuditEntry, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal audit payload: %w", err)
	}
	return &domain.AuditEntry{
		ID:        domain.NewID(),
		TableName: table,
		RecordID:  recordID,
		ChangedBy: changedBy,
		ChangedAt: r.now(),
		Kind:      kind,
		Diff:      raw,
	}, nil
}

// Snapshot converts an entity (or a purpose-built audit view of one) into a
// flat field map via a JSON round trip, so diffing compares the values that
// would actually be persisted in the payload.
func Snapshot(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot state: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("snapshot state: %w", err)
	}
	return m, nil
}

// Diff returns the fields whose values differ between two snapshots. Fields
// present on only one side appear with a nil counterpart.
func Diff(oldRecord, newRecord map[string]any) map[string]FieldChange {
	fields := make(map[string]FieldChange)
	for k, oldVal := range oldRecord {
		newVal, ok := newRecord[k]
		if !ok {
			fields[k] = FieldChange{Old: oldVal, New: nil}
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			fields[k] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	for k, newVal := range newRecord {
		if _, ok := oldRecord[k]; !ok {
			fields[k] = FieldChange{Old: nil, New: newVal}
		}
	}
	return fields
}
