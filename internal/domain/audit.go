package domain

import (
	"encoding/json"
	"time"
)

// ChangeKind identifies how a governed record was mutated.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// Known reports whether k is one of the enumerated change kinds.
func (k ChangeKind) Known() bool {
	switch k {
	case ChangeInsert, ChangeUpdate, ChangeDelete:
		return true
	}
	return false
}

// AuditEntry is one immutable record of a committed mutation. It is created
// exactly once, in the same transaction as the governed write, and is never
// updated or deleted by application logic. It survives deletion of the
// record it describes.
type AuditEntry struct {
	ID        string
	TableName string
	RecordID  string
	ChangedBy string
	ChangedAt time.Time
	Kind      ChangeKind
	Diff      json.RawMessage
}

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	TableName *string
	RecordID  *string
	ChangedBy *string
	Kind      *ChangeKind
	Page      PageRequest
}
