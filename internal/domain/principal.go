package domain

import "time"

// Role is one of the fixed set of privilege levels, strictly ordered
// viewer < manager < admin.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists all known roles in ascending privilege order.
var Roles = []Role{RoleViewer, RoleManager, RoleAdmin}

// Known reports whether r is one of the enumerated roles.
func (r Role) Known() bool {
	switch r {
	case RoleViewer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Normalize maps unknown role values to the lowest privilege. A forged or
// stale role claim must never resolve to an elevated role.
func (r Role) Normalize() Role {
	if r.Known() {
		return r
	}
	return RoleViewer
}

// User is an account that can authenticate and act on governed records.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Player is a roster entry tied to a user account.
type Player struct {
	ID        string
	UserID    string
	Ranking   int
	Stats     *PlayerStats
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerStats aggregates a player's match record.
type PlayerStats struct {
	TotalMatches int     `json:"totalMatches"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
}
