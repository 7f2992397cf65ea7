// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase.
package testutil

import (
	"context"

	"courtside/internal/domain"
)

// === User Repository Mock ===

// MockUserRepo implements domain.UserRepository for testing. Mutating calls
// collect the audit entries they were handed so tests can assert the
// governed-write contract.
type MockUserRepo struct {
	CreateFn     func(ctx context.Context, u *domain.User, entry *domain.AuditEntry) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)
	UpdateFn     func(ctx context.Context, u *domain.User, entry *domain.AuditEntry) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id string, entry *domain.AuditEntry) error
	Entries      []*domain.AuditEntry // collected entries for assertions
}

// Create implements the interface method for testing.
func (m *MockUserRepo) Create(ctx context.Context, u *domain.User, entry *domain.AuditEntry) (*domain.User, error) {
	if m.CreateFn != nil {
		out, err := m.CreateFn(ctx, u, entry)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		return out, nil
	}
	m.Entries = append(m.Entries, entry)
	return u, nil
}

// GetByID implements the interface method for testing.
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.GetByID")
}

// GetByEmail implements the interface method for testing.
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	panic("unexpected call to MockUserRepo.GetByEmail")
}

// List implements the interface method for testing.
func (m *MockUserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	panic("unexpected call to MockUserRepo.List")
}

// Update implements the interface method for testing.
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User, entry *domain.AuditEntry) (*domain.User, error) {
	if m.UpdateFn != nil {
		out, err := m.UpdateFn(ctx, u, entry)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		return out, nil
	}
	m.Entries = append(m.Entries, entry)
	return u, nil
}

// Delete implements the interface method for testing.
func (m *MockUserRepo) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	if m.DeleteFn != nil {
		if err := m.DeleteFn(ctx, id, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockUserRepo) LastEntry() *domain.AuditEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

var _ domain.UserRepository = (*MockUserRepo)(nil)

// === Player Repository Mock ===

// MockPlayerRepo implements domain.PlayerRepository for testing.
type MockPlayerRepo struct {
	CreateFn  func(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Player, error)
	ListFn    func(ctx context.Context, page domain.PageRequest) ([]domain.Player, int64, error)
	UpdateFn  func(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error)
	DeleteFn  func(ctx context.Context, id string, entry *domain.AuditEntry) error
	Entries   []*domain.AuditEntry
}

// Create implements the interface method for testing.
func (m *MockPlayerRepo) Create(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error) {
	if m.CreateFn != nil {
		out, err := m.CreateFn(ctx, p, entry)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		return out, nil
	}
	m.Entries = append(m.Entries, entry)
	return p, nil
}

// GetByID implements the interface method for testing.
func (m *MockPlayerRepo) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockPlayerRepo.GetByID")
}

// List implements the interface method for testing.
func (m *MockPlayerRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Player, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	panic("unexpected call to MockPlayerRepo.List")
}

// Update implements the interface method for testing.
func (m *MockPlayerRepo) Update(ctx context.Context, p *domain.Player, entry *domain.AuditEntry) (*domain.Player, error) {
	if m.UpdateFn != nil {
		out, err := m.UpdateFn(ctx, p, entry)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		return out, nil
	}
	m.Entries = append(m.Entries, entry)
	return p, nil
}

// Delete implements the interface method for testing.
func (m *MockPlayerRepo) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	if m.DeleteFn != nil {
		if err := m.DeleteFn(ctx, id, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockPlayerRepo) LastEntry() *domain.AuditEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

var _ domain.PlayerRepository = (*MockPlayerRepo)(nil)

// === Match Repository Mock ===

// MockMatchRepo implements domain.MatchRepository for testing.
type MockMatchRepo struct {
	CreateFn    func(ctx context.Context, match *domain.Match, entry *domain.AuditEntry) (*domain.Match, error)
	GetByIDFn   func(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error)
	ListFn      func(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, int64, error)
	SaveScoreFn func(ctx context.Context, match *domain.Match, sets []domain.MatchSet, entry *domain.AuditEntry) error
	DeleteFn    func(ctx context.Context, id string, entry *domain.AuditEntry) error
	Entries     []*domain.AuditEntry
}

// Create implements the interface method for testing.
func (m *MockMatchRepo) Create(ctx context.Context, match *domain.Match, entry *domain.AuditEntry) (*domain.Match, error) {
	if m.CreateFn != nil {
		out, err := m.CreateFn(ctx, match, entry)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		return out, nil
	}
	m.Entries = append(m.Entries, entry)
	return match, nil
}

// GetByID implements the interface method for testing.
func (m *MockMatchRepo) GetByID(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockMatchRepo.GetByID")
}

// List implements the interface method for testing.
func (m *MockMatchRepo) List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	panic("unexpected call to MockMatchRepo.List")
}

// SaveScore implements the interface method for testing.
func (m *MockMatchRepo) SaveScore(ctx context.Context, match *domain.Match, sets []domain.MatchSet, entry *domain.AuditEntry) error {
	if m.SaveScoreFn != nil {
		if err := m.SaveScoreFn(ctx, match, sets, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// Delete implements the interface method for testing.
func (m *MockMatchRepo) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	if m.DeleteFn != nil {
		if err := m.DeleteFn(ctx, id, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockMatchRepo) LastEntry() *domain.AuditEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

var _ domain.MatchRepository = (*MockMatchRepo)(nil)

// === Audit Repository Mock ===

// MockAuditRepo implements domain.AuditRepository for testing.
type MockAuditRepo struct {
	ListFn func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error)
}

// List implements the interface method for testing.
func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	panic("unexpected call to MockAuditRepo.List")
}

var _ domain.AuditRepository = (*MockAuditRepo)(nil)
