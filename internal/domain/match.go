package domain

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchRetired   MatchStatus = "retired"
	MatchWalkover  MatchStatus = "walkover"
)

// Known reports whether s is one of the enumerated statuses.
func (s MatchStatus) Known() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchCompleted, MatchRetired, MatchWalkover:
		return true
	}
	return false
}

// Decided reports whether the status requires a winner side: the match is
// over, either by play or by the losing side not finishing.
func (s MatchStatus) Decided() bool {
	return s == MatchCompleted || s == MatchRetired || s == MatchWalkover
}

// MatchFormat identifies the competition format of a match.
type MatchFormat string

const (
	FormatSingles      MatchFormat = "singles"
	FormatDoubles      MatchFormat = "doubles"
	FormatMixedDoubles MatchFormat = "mixed_doubles"
)

// Surface is the court surface a match is played on.
type Surface string

const (
	SurfaceHard   Surface = "hard"
	SurfaceClay   Surface = "clay"
	SurfaceGrass  Surface = "grass"
	SurfaceCarpet Surface = "carpet"
)

// Side identifies one of the two competing parties in a match. Exactly one
// of PlayerID or TeamID is set.
type Side struct {
	PlayerID *string `json:"playerId,omitempty"`
	TeamID   *string `json:"teamId,omitempty"`
}

// Valid reports whether the side references exactly one competitor.
func (s Side) Valid() bool {
	return (s.PlayerID != nil) != (s.TeamID != nil)
}

// Match is a governed record describing a best-of-N contest between two sides.
// WinnerSide is set if and only if Status is completed, retired, or walkover.
type Match struct {
	ID          string
	Format      MatchFormat
	Surface     Surface
	BestOf      int // odd positive set ceiling, e.g. 3 or 5
	Status      MatchStatus
	WinnerSide  *int // 1 or 2
	Side1       Side
	Side2       Side
	ScheduledAt *time.Time
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetsToWin returns the strict majority of sets required to decide the match.
func (m *Match) SetsToWin() int {
	return m.BestOf/2 + 1
}

// MatchSet is one set of a match. Sets are numbered 1..k with no gaps.
// Tiebreak points are present only when the game score triggered a tiebreak.
type MatchSet struct {
	Number    int  `json:"number"`
	Games1    int  `json:"games1"`
	Games2    int  `json:"games2"`
	Tiebreak1 *int `json:"tiebreak1,omitempty"`
	Tiebreak2 *int `json:"tiebreak2,omitempty"`
}

// WinnerSide returns 1 or 2 for the side that won the set, or 0 when the
// game counts are level.
func (s MatchSet) WinnerSide() int {
	switch {
	case s.Games1 > s.Games2:
		return 1
	case s.Games2 > s.Games1:
		return 2
	}
	return 0
}
