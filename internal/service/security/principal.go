// Package security implements user-account management and sign-in.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"courtside/internal/audit"
	"courtside/internal/credential"
	"courtside/internal/domain"
	"courtside/internal/rbac"
)

const usersTable = "users"

// PrincipalService manages user accounts. Every mutation is a governed
// write: the audit entry is built first and persisted in the same
// transaction by the repository.
type PrincipalService struct {
	users    domain.UserRepository
	gate     *rbac.Gate
	recorder *audit.Recorder
	hasher   credential.Hasher
}

// NewPrincipalService creates a new PrincipalService.
func NewPrincipalService(users domain.UserRepository, gate *rbac.Gate, recorder *audit.Recorder, hasher credential.Hasher) *PrincipalService {
	return &PrincipalService{users: users, gate: gate, recorder: recorder, hasher: hasher}
}

// userAudit is the audited view of a user. The raw password hash never
// enters the audit log; a short fingerprint records that the credential
// changed without exposing material.
type userAudit struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Credential string  `json:"credential"`
	CreatedBy  *string `json:"createdBy"`
}

func auditView(u *domain.User) userAudit {
	v := userAudit{
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedBy: u.CreatedBy,
	}
	if u.PasswordHash != "" {
		sum := sha256.Sum256([]byte(u.PasswordHash))
		v.Credential = hex.EncodeToString(sum[:6])
	}
	return v
}

// CreateUserRequest carries the fields for a new account.
type CreateUserRequest struct {
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// Create adds a user account. Requires manage-users.
func (s *PrincipalService) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	p, err := s.gate.Require(ctx, rbac.CapManageUsers)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, domain.ErrValidation("email is required")
	}
	if !req.Role.Known() {
		return nil, domain.ErrValidation("unknown role %q", req.Role)
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:        domain.NewID(),
		Name:      req.Name,
		Email:     email,
		Role:      req.Role,
		CreatedBy: &p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	entry, err := s.recorder.Insert(usersTable, u.ID, p.ID, auditView(u))
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, u, entry)
}

// Get returns a user by id. Requires view-users.
func (s *PrincipalService) Get(ctx context.Context, id string) (*domain.User, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewUsers); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// List returns a page of users. Requires view-users.
func (s *PrincipalService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewUsers); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, page)
}

// UpdateRequest carries the mutable account fields. Nil means unchanged.
type UpdateRequest struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// Update modifies an account. A role change here does not touch tokens
// already issued: the embedded role stays authoritative until expiry.
// Requires manage-users.
func (s *PrincipalService) Update(ctx context.Context, id string, req UpdateRequest) (*domain.User, error) {
	p, err := s.gate.Require(ctx, rbac.CapManageUsers)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditView(u)

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email == "" {
			return nil, domain.ErrValidation("email is required")
		}
		u.Email = email
	}
	if req.Role != nil {
		if !req.Role.Known() {
			return nil, domain.ErrValidation("unknown role %q", *req.Role)
		}
		u.Role = *req.Role
	}
	u.UpdatedAt = time.Now().UTC()

	entry, err := s.recorder.Update(usersTable, u.ID, p.ID, before, auditView(u))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return u, nil // nothing changed
	}
	return s.users.Update(ctx, u, entry)
}

// SetPassword replaces an account's credential. Requires manage-users.
func (s *PrincipalService) SetPassword(ctx context.Context, id, password string) error {
	p, err := s.gate.Require(ctx, rbac.CapManageUsers)
	if err != nil {
		return err
	}
	if password == "" {
		return domain.ErrValidation("password is required")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	before := auditView(u)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()

	entry, err := s.recorder.Update(usersTable, u.ID, p.ID, before, auditView(u))
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, u, entry)
	return err
}

// Delete removes an account. The audit entry keeps the full prior state and
// outlives the row. Requires manage-users.
func (s *PrincipalService) Delete(ctx context.Context, id string) error {
	p, err := s.gate.Require(ctx, rbac.CapManageUsers)
	if err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Delete(usersTable, id, p.ID, auditView(u))
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, id, entry)
}
