// Package governance implements audit log access.
package governance

import (
	"context"

	"courtside/internal/domain"
	"courtside/internal/rbac"
)

// AuditService provides audit log listing.
type AuditService struct {
	repo domain.AuditRepository
	gate *rbac.Gate
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository, gate *rbac.Gate) *AuditService {
	return &AuditService{repo: repo, gate: gate}
}

// List returns a filtered, paginated view of the audit log. Requires view-audit.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if _, err := s.gate.Require(ctx, rbac.CapViewAudit); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}
