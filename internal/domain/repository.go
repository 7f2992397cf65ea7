package domain

import "context"

// Mutating repository methods take the AuditEntry describing the change and
// persist it in the same transaction as the governed write: if the audit
// insert fails, the write fails with it. Callers build the entry with
// the audit recorder before invoking the repository.

// UserRepository provides CRUD operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User, entry *AuditEntry) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	Update(ctx context.Context, u *User, entry *AuditEntry) (*User, error)
	Delete(ctx context.Context, id string, entry *AuditEntry) error
}

// PlayerRepository provides CRUD operations for roster entries.
type PlayerRepository interface {
	Create(ctx context.Context, p *Player, entry *AuditEntry) (*Player, error)
	GetByID(ctx context.Context, id string) (*Player, error)
	List(ctx context.Context, page PageRequest) ([]Player, int64, error)
	Update(ctx context.Context, p *Player, entry *AuditEntry) (*Player, error)
	Delete(ctx context.Context, id string, entry *AuditEntry) error
}

// MatchFilter narrows a match listing.
type MatchFilter struct {
	Status *MatchStatus
	Page   PageRequest
}

// MatchRepository provides operations for matches and their sets.
type MatchRepository interface {
	Create(ctx context.Context, m *Match, entry *AuditEntry) (*Match, error)
	GetByID(ctx context.Context, id string) (*Match, []MatchSet, error)
	List(ctx context.Context, filter MatchFilter) ([]Match, int64, error)
	// SaveScore replaces the match row and its full set list in one
	// transaction, together with the audit entry.
	SaveScore(ctx context.Context, m *Match, sets []MatchSet, entry *AuditEntry) error
	Delete(ctx context.Context, id string, entry *AuditEntry) error
}

// AuditRepository provides read access to the audit log. Entries are written
// only through the governed-write repositories; nothing updates or deletes
// them.
type AuditRepository interface {
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
}
