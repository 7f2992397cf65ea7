package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain"
)

func TestSatisfies_Hierarchy(t *testing.T) {
	tests := []struct {
		role     domain.Role
		required domain.Role
		want     bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleManager, true},
		{domain.RoleAdmin, domain.RoleViewer, true},
		{domain.RoleManager, domain.RoleAdmin, false},
		{domain.RoleManager, domain.RoleManager, true},
		{domain.RoleManager, domain.RoleViewer, true},
		{domain.RoleViewer, domain.RoleAdmin, false},
		{domain.RoleViewer, domain.RoleManager, false},
		{domain.RoleViewer, domain.RoleViewer, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Satisfies(tt.role, tt.required),
			"%s satisfies %s", tt.role, tt.required)
	}
}

// A role's closure must contain the closure of every role below it. This is
// what makes "minimum role" checks monotonic: granting a capability to
// viewers can never take it away from managers or admins.
func TestClosure_Monotonic(t *testing.T) {
	contains := func(set []domain.Role, r domain.Role) bool {
		for _, x := range set {
			if x == r {
				return true
			}
		}
		return false
	}

	admin := Closure(domain.RoleAdmin)
	manager := Closure(domain.RoleManager)
	viewer := Closure(domain.RoleViewer)

	for _, r := range viewer {
		assert.True(t, contains(manager, r), "manager closure missing %s", r)
	}
	for _, r := range manager {
		assert.True(t, contains(admin, r), "admin closure missing %s", r)
	}
}

func TestSatisfies_UnknownRoleIsLowestPrivilege(t *testing.T) {
	assert.True(t, Satisfies(domain.Role("superuser"), domain.RoleViewer))
	assert.False(t, Satisfies(domain.Role("superuser"), domain.RoleManager))
	assert.False(t, Satisfies(domain.Role(""), domain.RoleAdmin))
}

func TestGate_MinimumRole_FailsClosed(t *testing.T) {
	g := NewGate(nil)

	assert.Equal(t, domain.RoleAdmin, g.MinimumRole(CapManageUsers))
	assert.Equal(t, domain.RoleViewer, g.MinimumRole(CapViewRoster))
	// Undeclared capabilities require the highest role.
	assert.Equal(t, domain.RoleAdmin, g.MinimumRole(Capability("mystery")))
}

func TestGate_Authorize(t *testing.T) {
	g := NewGate(nil)

	t.Run("nil principal is unauthenticated", func(t *testing.T) {
		err := g.Authorize(nil, CapViewRoster)
		var unauth *domain.UnauthenticatedError
		require.ErrorAs(t, err, &unauth)
	})

	t.Run("insufficient role is forbidden", func(t *testing.T) {
		p := &domain.ContextPrincipal{ID: "u1", Role: domain.RoleViewer}
		err := g.Authorize(p, CapManageUsers)
		var forbidden *domain.ForbiddenError
		require.ErrorAs(t, err, &forbidden)
	})

	t.Run("sufficient role is allowed", func(t *testing.T) {
		p := &domain.ContextPrincipal{ID: "u1", Role: domain.RoleManager}
		require.NoError(t, g.Authorize(p, CapManageRoster))
	})

	t.Run("admin passes everything", func(t *testing.T) {
		p := &domain.ContextPrincipal{ID: "u1", Role: domain.RoleAdmin}
		for c := range defaultCapabilities {
			assert.NoError(t, g.Authorize(p, c), "capability %s", c)
		}
	})
}

func TestGate_Require(t *testing.T) {
	g := NewGate(nil)

	t.Run("missing principal", func(t *testing.T) {
		_, err := g.Require(context.Background(), CapViewMatches)
		var unauth *domain.UnauthenticatedError
		require.ErrorAs(t, err, &unauth)
	})

	t.Run("principal from context", func(t *testing.T) {
		ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
			ID: "u1", Name: "Alice", Role: domain.RoleAdmin,
		})
		p, err := g.Require(ctx, CapViewAudit)
		require.NoError(t, err)
		assert.Equal(t, "u1", p.ID)
	})
}

func TestGate_Override(t *testing.T) {
	g := NewGate(nil)
	g.Override(CapViewAudit, domain.RoleManager)

	p := &domain.ContextPrincipal{ID: "u1", Role: domain.RoleManager}
	require.NoError(t, g.Authorize(p, CapViewAudit))

	viewer := &domain.ContextPrincipal{ID: "u2", Role: domain.RoleViewer}
	require.Error(t, g.Authorize(viewer, CapViewAudit))
}

func TestGate_IsPublic(t *testing.T) {
	g := NewGate([]string{"/auth/", "/healthz"})

	assert.True(t, g.IsPublic("/auth/signin"))
	assert.True(t, g.IsPublic("/healthz"))
	assert.False(t, g.IsPublic("/healthz2"))
	assert.False(t, g.IsPublic("/v1/users"))
}
