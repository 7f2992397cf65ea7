package governance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain"
	"courtside/internal/rbac"
	"courtside/internal/testutil"
)

func ctxAs(role domain.Role) context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID:   "actor-1",
		Name: "Actor",
		Role: role,
	})
}

func TestAuditService_List(t *testing.T) {
	repo := &testutil.MockAuditRepo{
		ListFn: func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
			require.NotNil(t, filter.TableName)
			assert.Equal(t, "users", *filter.TableName)
			return []domain.AuditEntry{{ID: "a-1", TableName: "users"}}, 1, nil
		},
	}
	svc := NewAuditService(repo, rbac.NewGate(nil))

	entries, total, err := svc.List(ctxAs(domain.RoleAdmin), domain.AuditFilter{
		TableName: func() *string { s := "users"; return &s }(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "a-1", entries[0].ID)
}

func TestAuditService_List_AdminOnly(t *testing.T) {
	svc := NewAuditService(&testutil.MockAuditRepo{}, rbac.NewGate(nil))

	_, _, err := svc.List(ctxAs(domain.RoleManager), domain.AuditFilter{})
	var forbidden *domain.ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	_, _, err = svc.List(ctxAs(domain.RoleViewer), domain.AuditFilter{})
	require.ErrorAs(t, err, &forbidden)

	_, _, err = svc.List(context.Background(), domain.AuditFilter{})
	var unauthn *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauthn)
}

func TestAuditService_List_OverrideWidensAccess(t *testing.T) {
	repo := &testutil.MockAuditRepo{
		ListFn: func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
			return nil, 0, nil
		},
	}
	gate := rbac.NewGate(nil)
	gate.Override(rbac.CapViewAudit, domain.RoleManager)
	svc := NewAuditService(repo, gate)

	_, _, err := svc.List(ctxAs(domain.RoleManager), domain.AuditFilter{})
	require.NoError(t, err)
}
