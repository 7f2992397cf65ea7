// Package matches implements match scheduling and score recording.
package matches

import (
	"context"
	"time"

	"courtside/internal/audit"
	"courtside/internal/domain"
	"courtside/internal/rbac"
	"courtside/internal/scoring"
)

const matchesTable = "matches"

// MatchService manages matches and their sets. Score writes pass the scoring
// invariants before any audit entry is built; the repository then commits
// the match row, the set list, and the audit entry as one transaction.
type MatchService struct {
	matches  domain.MatchRepository
	gate     *rbac.Gate
	recorder *audit.Recorder
	rules    scoring.Rules
}

// NewMatchService creates a new MatchService.
func NewMatchService(matches domain.MatchRepository, gate *rbac.Gate, recorder *audit.Recorder, rules scoring.Rules) *MatchService {
	return &MatchService{matches: matches, gate: gate, recorder: recorder, rules: rules}
}

// matchAudit is the audited view of a match together with its sets, so a
// score change shows up as one diff over the whole governed record.
type matchAudit struct {
	Format      domain.MatchFormat `json:"format"`
	Surface     domain.Surface     `json:"surface"`
	BestOf      int                `json:"bestOf"`
	Status      domain.MatchStatus `json:"status"`
	WinnerSide  *int               `json:"winnerSide"`
	Side1       domain.Side        `json:"side1"`
	Side2       domain.Side        `json:"side2"`
	ScheduledAt *time.Time         `json:"scheduledAt"`
	Sets        []domain.MatchSet  `json:"sets"`
}

func auditView(m *domain.Match, sets []domain.MatchSet) matchAudit {
	return matchAudit{
		Format:      m.Format,
		Surface:     m.Surface,
		BestOf:      m.BestOf,
		Status:      m.Status,
		WinnerSide:  m.WinnerSide,
		Side1:       m.Side1,
		Side2:       m.Side2,
		ScheduledAt: m.ScheduledAt,
		Sets:        sets,
	}
}

// CreateRequest carries the fields for scheduling a new match.
type CreateRequest struct {
	Format      domain.MatchFormat
	Surface     domain.Surface
	BestOf      int
	Side1       domain.Side
	Side2       domain.Side
	ScheduledAt *time.Time
}

// Create schedules a match. Requires manage-matches.
func (s *MatchService) Create(ctx context.Context, req CreateRequest) (*domain.Match, error) {
	p, err := s.gate.Require(ctx, rbac.CapManageMatches)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &domain.Match{
		ID:          domain.NewID(),
		Format:      req.Format,
		Surface:     req.Surface,
		BestOf:      req.BestOf,
		Status:      domain.MatchScheduled,
		Side1:       req.Side1,
		Side2:       req.Side2,
		ScheduledAt: req.ScheduledAt,
		CreatedBy:   &p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := scoring.ValidateMatch(s.rules, m, nil); err != nil {
		return nil, err
	}

	entry, err := s.recorder.Insert(matchesTable, m.ID, p.ID, auditView(m, nil))
	if err != nil {
		return nil, err
	}
	return s.matches.Create(ctx, m, entry)
}

// Get returns a match with its sets. Requires view-matches.
func (s *MatchService) Get(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewMatches); err != nil {
		return nil, nil, err
	}
	return s.matches.GetByID(ctx, id)
}

// List returns a page of matches, optionally filtered by status.
// Requires view-matches.
func (s *MatchService) List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, int64, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewMatches); err != nil {
		return nil, 0, err
	}
	return s.matches.List(ctx, filter)
}

// ScoreRequest is a proposed new scoring state for a match: the full set
// list, the resulting status, and the declared winner where the status
// requires one.
type ScoreRequest struct {
	Status     domain.MatchStatus
	WinnerSide *int
	Sets       []domain.MatchSet
}

// RecordScore applies a score update. The proposed state must satisfy every
// scoring invariant; on success the match row, its sets, and the audit diff
// commit together. Requires manage-matches.
func (s *MatchService) RecordScore(ctx context.Context, id string, req ScoreRequest) (*domain.Match, []domain.MatchSet, error) {
	p, err := s.gate.Require(ctx, rbac.CapManageMatches)
	if err != nil {
		return nil, nil, err
	}

	m, oldSets, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	before := auditView(m, oldSets)

	m.Status = req.Status
	m.WinnerSide = req.WinnerSide
	m.UpdatedAt = time.Now().UTC()

	if err := scoring.ValidateMatch(s.rules, m, req.Sets); err != nil {
		return nil, nil, err
	}

	entry, err := s.recorder.Update(matchesTable, m.ID, p.ID, before, auditView(m, req.Sets))
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return m, oldSets, nil // proposed state identical to stored state
	}
	if err := s.matches.SaveScore(ctx, m, req.Sets, entry); err != nil {
		return nil, nil, err
	}
	return m, req.Sets, nil
}

// Delete removes a match; its audit trail remains. Requires manage-matches.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	p, err := s.gate.Require(ctx, rbac.CapManageMatches)
	if err != nil {
		return err
	}

	m, sets, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := s.recorder.Delete(matchesTable, id, p.ID, auditView(m, sets))
	if err != nil {
		return err
	}
	return s.matches.Delete(ctx, id, entry)
}
