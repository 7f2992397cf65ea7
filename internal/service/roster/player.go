// Package roster implements player-profile management.
package roster

import (
	"context"
	"time"

	"courtside/internal/audit"
	"courtside/internal/domain"
	"courtside/internal/rbac"
)

const playersTable = "players"

// PlayerService manages roster entries. Mutations are governed writes.
type PlayerService struct {
	players  domain.PlayerRepository
	users    domain.UserRepository
	gate     *rbac.Gate
	recorder *audit.Recorder
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(players domain.PlayerRepository, users domain.UserRepository, gate *rbac.Gate, recorder *audit.Recorder) *PlayerService {
	return &PlayerService{players: players, users: users, gate: gate, recorder: recorder}
}

type playerAudit struct {
	UserID    string              `json:"userId"`
	Ranking   int                 `json:"ranking"`
	Stats     *domain.PlayerStats `json:"stats"`
	CreatedBy *string             `json:"createdBy"`
}

func auditView(p *domain.Player) playerAudit {
	return playerAudit{UserID: p.UserID, Ranking: p.Ranking, Stats: p.Stats, CreatedBy: p.CreatedBy}
}

// CreateRequest carries the fields for a new roster entry.
type CreateRequest struct {
	UserID  string
	Ranking int
}

// Create adds a player tied to an existing user account. Requires manage-roster.
func (s *PlayerService) Create(ctx context.Context, req CreateRequest) (*domain.Player, error) {
	principal, err := s.gate.Require(ctx, rbac.CapManageRoster)
	if err != nil {
		return nil, err
	}
	if req.UserID == "" {
		return nil, domain.ErrValidation("userId is required")
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Player{
		ID:        domain.NewID(),
		UserID:    req.UserID,
		Ranking:   req.Ranking,
		CreatedBy: &principal.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	entry, err := s.recorder.Insert(playersTable, p.ID, principal.ID, auditView(p))
	if err != nil {
		return nil, err
	}
	return s.players.Create(ctx, p, entry)
}

// Get returns a player by id. Requires view-roster.
func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewRoster); err != nil {
		return nil, err
	}
	return s.players.GetByID(ctx, id)
}

// List returns a page of players ordered by ranking. Requires view-roster.
func (s *PlayerService) List(ctx context.Context, page domain.PageRequest) ([]domain.Player, int64, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewRoster); err != nil {
		return nil, 0, err
	}
	return s.players.List(ctx, page)
}

// UpdateRequest carries the mutable roster fields. Nil means unchanged.
type UpdateRequest struct {
	Ranking *int
	Stats   *domain.PlayerStats
}

// Update modifies a roster entry. Requires manage-roster.
func (s *PlayerService) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Player, error) {
	principal, err := s.gate.Require(ctx, rbac.CapManageRoster)
	if err != nil {
		return nil, err
	}

	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditView(p)

	if req.Ranking != nil {
		p.Ranking = *req.Ranking
	}
	if req.Stats != nil {
		p.Stats = req.Stats
	}
	p.UpdatedAt = time.Now().UTC()

	entry, err := s.recorder.Update(playersTable, p.ID, principal.ID, before, auditView(p))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return p, nil
	}
	return s.players.Update(ctx, p, entry)
}

// Delete removes a roster entry. Requires manage-roster.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	principal, err := s.gate.Require(ctx, rbac.CapManageRoster)
	if err != nil {
		return err
	}

	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Delete(playersTable, id, principal.ID, auditView(p))
	if err != nil {
		return err
	}
	return s.players.Delete(ctx, id, entry)
}
