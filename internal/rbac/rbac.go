// Package rbac implements the role hierarchy and the per-request
// authorization gate. The hierarchy is static, total data: adding a role
// means adding one closure declaration, not editing route conditionals.
package rbac

import (
	"context"
	"strings"

	"courtside/internal/domain"
)

// Capability is an abstract permission tag gating one action. Each
// capability maps to the minimum role allowed to perform it.
type Capability string

const (
	CapManageUsers   Capability = "manage-users"
	CapViewUsers     Capability = "view-users"
	CapManageRoster  Capability = "manage-roster"
	CapViewRoster    Capability = "view-roster"
	CapManageMatches Capability = "manage-matches"
	CapViewMatches   Capability = "view-matches"
	CapViewAudit     Capability = "view-audit"
)

// closures maps each role to the ordered set of roles it is at least as
// privileged as. The relation is total and transitive: admin's closure is a
// superset of manager's, which is a superset of viewer's.
var closures = map[domain.Role][]domain.Role{
	domain.RoleAdmin:   {domain.RoleAdmin, domain.RoleManager, domain.RoleViewer},
	domain.RoleManager: {domain.RoleManager, domain.RoleViewer},
	domain.RoleViewer:  {domain.RoleViewer},
}

// defaultCapabilities maps each capability to its minimum required role.
var defaultCapabilities = map[Capability]domain.Role{
	CapManageUsers:   domain.RoleAdmin,
	CapViewUsers:     domain.RoleManager,
	CapManageRoster:  domain.RoleManager,
	CapViewRoster:    domain.RoleViewer,
	CapManageMatches: domain.RoleManager,
	CapViewMatches:   domain.RoleViewer,
	CapViewAudit:     domain.RoleAdmin,
}

// Satisfies reports whether role is at least as privileged as required.
// Unknown roles are normalized to the lowest privilege first, so a forged
// claim can never elevate.
func Satisfies(role, required domain.Role) bool {
	for _, r := range closures[role.Normalize()] {
		if r == required {
			return true
		}
	}
	return false
}

// Closure returns the set of roles the given role satisfies.
func Closure(role domain.Role) []domain.Role {
	c := closures[role.Normalize()]
	out := make([]domain.Role, len(c))
	copy(out, c)
	return out
}

// Gate decides whether a principal may perform an action. It is a pure
// decision: callers translate a denial into the transport-level response.
type Gate struct {
	capabilities map[Capability]domain.Role
	publicPaths  []string
}

// NewGate creates a gate with the default capability map and the given
// public path prefixes (e.g. "/auth/", "/healthz"). Public paths bypass
// authentication entirely and are evaluated before identity resolution.
func NewGate(publicPaths []string) *Gate {
	caps := make(map[Capability]domain.Role, len(defaultCapabilities))
	for c, r := range defaultCapabilities {
		caps[c] = r
	}
	return &Gate{capabilities: caps, publicPaths: publicPaths}
}

// Override replaces the minimum role for a capability. Unknown minimum
// roles are rejected by the caller (see LoadCapabilityFile).
func (g *Gate) Override(c Capability, minimum domain.Role) {
	g.capabilities[c] = minimum
}

// IsPublic reports whether the path is on the public allow-list.
// Prefixes ending in "/" match by prefix; other entries match exactly.
func (g *Gate) IsPublic(path string) bool {
	for _, p := range g.publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

// MinimumRole returns the minimum role required for a capability. Unknown
// capabilities require admin, so a missing declaration fails closed.
func (g *Gate) MinimumRole(c Capability) domain.Role {
	if r, ok := g.capabilities[c]; ok {
		return r
	}
	return domain.RoleAdmin
}

// Authorize returns nil when the principal may perform the capability.
// A nil principal yields UnauthenticatedError; an authenticated principal
// whose role does not satisfy the capability's minimum yields
// ForbiddenError. The two are distinct so clients can tell "log in" apart
// from "you lack permission".
func (g *Gate) Authorize(principal *domain.ContextPrincipal, c Capability) error {
	if principal == nil {
		return domain.ErrUnauthenticated("authentication required")
	}
	min := g.MinimumRole(c)
	if !Satisfies(principal.Role, min) {
		return domain.ErrForbidden("role %q does not satisfy %q (requires %s)", principal.Role, c, min)
	}
	return nil
}

// Require extracts the principal from the request context and authorizes the
// capability. Services call this before any governed read or write.
func (g *Gate) Require(ctx context.Context, c Capability) (domain.ContextPrincipal, error) {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.ContextPrincipal{}, domain.ErrUnauthenticated("authentication required")
	}
	if err := g.Authorize(&p, c); err != nil {
		return domain.ContextPrincipal{}, err
	}
	return p, nil
}
