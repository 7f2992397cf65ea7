// Package scoring validates match and set scores. It is pure: every write
// path runs these checks before an audit entry is produced, and a rejection
// means invalid caller input, never a transient failure.
package scoring

import (
	"sort"

	"courtside/internal/domain"
)

// Rules parameterizes set validation. The zero value is replaced by
// DefaultRules values field-by-field, so partial configuration works.
type Rules struct {
	// GamesToWin is the base number of games that wins a set (6).
	GamesToWin int
	// WinBy is the required game margin for a non-tiebreak set (2).
	WinBy int
	// TiebreakMinPoints is the minimum points the tiebreak winner must
	// reach (7). Only enforced when TiebreakWinBy > 0.
	TiebreakMinPoints int
	// TiebreakWinBy is the required point margin in a tiebreak (2).
	// 0 disables margin checking: any strict point lead decides.
	TiebreakWinBy int
}

// DefaultRules returns standard scoring rules.
func DefaultRules() Rules {
	return Rules{GamesToWin: 6, WinBy: 2, TiebreakMinPoints: 7, TiebreakWinBy: 2}
}

func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.GamesToWin <= 0 {
		r.GamesToWin = d.GamesToWin
	}
	if r.WinBy <= 0 {
		r.WinBy = d.WinBy
	}
	if r.TiebreakMinPoints <= 0 {
		r.TiebreakMinPoints = d.TiebreakMinPoints
	}
	return r
}

// isTiebreakScore reports whether the game counts are the tiebreak-triggering
// score (e.g. 7-6 under default rules).
func (r Rules) isTiebreakScore(hi, lo int) bool {
	return hi == r.GamesToWin+1 && lo == r.GamesToWin
}

// ValidateSet checks that one set's score describes a completed set.
func ValidateSet(rules Rules, s domain.MatchSet) error {
	r := rules.normalized()

	if s.Games1 < 0 || s.Games2 < 0 {
		return domain.ErrInvalidSetScore("set %d: negative game count", s.Number)
	}
	if s.Games1 == s.Games2 {
		return domain.ErrInvalidSetScore("set %d: %d-%d has no winner", s.Number, s.Games1, s.Games2)
	}

	hi, lo := s.Games1, s.Games2
	if lo > hi {
		hi, lo = lo, hi
	}

	switch {
	case r.isTiebreakScore(hi, lo):
		return validateTiebreak(r, s)
	case hi >= r.GamesToWin && hi <= r.GamesToWin+1 && hi-lo >= r.WinBy:
		// Completed without a tiebreak; stray tiebreak points are invalid.
		if s.Tiebreak1 != nil || s.Tiebreak2 != nil {
			return domain.ErrInvalidSetScore("set %d: tiebreak points recorded for non-tiebreak score %d-%d", s.Number, s.Games1, s.Games2)
		}
		return nil
	default:
		return domain.ErrInvalidSetScore("set %d: %d-%d is not a completed set", s.Number, s.Games1, s.Games2)
	}
}

func validateTiebreak(r Rules, s domain.MatchSet) error {
	if s.Tiebreak1 == nil || s.Tiebreak2 == nil {
		return domain.ErrInvalidSetScore("set %d: score %d-%d requires tiebreak points for both sides", s.Number, s.Games1, s.Games2)
	}
	tb1, tb2 := *s.Tiebreak1, *s.Tiebreak2
	if tb1 < 0 || tb2 < 0 {
		return domain.ErrInvalidSetScore("set %d: negative tiebreak points", s.Number)
	}
	if tb1 == tb2 {
		return domain.ErrInvalidSetScore("set %d: tiebreak %d-%d has no winner", s.Number, tb1, tb2)
	}

	tbWinner := 1
	winPts, losePts := tb1, tb2
	if tb2 > tb1 {
		tbWinner = 2
		winPts, losePts = tb2, tb1
	}
	if tbWinner != s.WinnerSide() {
		return domain.ErrInvalidSetScore("set %d: tiebreak winner disagrees with game score %d-%d", s.Number, s.Games1, s.Games2)
	}
	if r.TiebreakWinBy > 0 {
		if winPts < r.TiebreakMinPoints {
			return domain.ErrInvalidSetScore("set %d: tiebreak won with %d points, need at least %d", s.Number, winPts, r.TiebreakMinPoints)
		}
		if winPts-losePts < r.TiebreakWinBy {
			return domain.ErrInvalidSetScore("set %d: tiebreak margin %d below required %d", s.Number, winPts-losePts, r.TiebreakWinBy)
		}
	}
	return nil
}

// ValidateSets checks the set sequence and every set score for a match, and
// rejects sets recorded after one side had already won the required
// majority.
func ValidateSets(rules Rules, m *domain.Match, sets []domain.MatchSet) error {
	ordered, err := orderedSets(sets)
	if err != nil {
		return err
	}

	setsToWin := m.SetsToWin()
	won := map[int]int{}
	for _, s := range ordered {
		if won[1] >= setsToWin || won[2] >= setsToWin {
			return domain.ErrMatchAlreadyDecided("set %d recorded after match was decided", s.Number)
		}
		if err := ValidateSet(rules, s); err != nil {
			return err
		}
		won[s.WinnerSide()]++
	}
	return nil
}

// orderedSets verifies the set numbers form 1..k with no duplicates or gaps
// and returns the sets sorted by number.
func orderedSets(sets []domain.MatchSet) ([]domain.MatchSet, error) {
	ordered := make([]domain.MatchSet, len(sets))
	copy(ordered, sets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	for i, s := range ordered {
		if s.Number != i+1 {
			return nil, domain.ErrInvalidSetSequence("set numbers must run 1..%d with no gaps, got set %d at position %d", len(ordered), s.Number, i+1)
		}
	}
	return ordered, nil
}

// DeriveWinner returns the side holding a strict majority of sets, or
// (0, false) when neither side has reached it.
func DeriveWinner(m *domain.Match, sets []domain.MatchSet) (int, bool) {
	setsToWin := m.SetsToWin()
	won := map[int]int{}
	for _, s := range sets {
		won[s.WinnerSide()]++
	}
	switch {
	case won[1] >= setsToWin:
		return 1, true
	case won[2] >= setsToWin:
		return 2, true
	}
	return 0, false
}

// ValidateMatch checks a proposed match state together with its sets:
// structural fields, set sequence and scores, and winner/status consistency.
func ValidateMatch(rules Rules, m *domain.Match, sets []domain.MatchSet) error {
	if m.BestOf <= 0 || m.BestOf%2 == 0 {
		return domain.ErrValidation("bestOf must be an odd positive integer, got %d", m.BestOf)
	}
	if !m.Status.Known() {
		return domain.ErrValidation("unknown match status %q", m.Status)
	}
	if !m.Side1.Valid() || !m.Side2.Valid() {
		return domain.ErrValidation("each side must reference exactly one player or team")
	}
	if m.WinnerSide != nil && *m.WinnerSide != 1 && *m.WinnerSide != 2 {
		return domain.ErrValidation("winnerSide must be 1 or 2, got %d", *m.WinnerSide)
	}

	if err := ValidateSets(rules, m, sets); err != nil {
		return err
	}

	// winnerSide is set if and only if the status is decided.
	if m.Status.Decided() && m.WinnerSide == nil {
		return domain.ErrValidation("status %q requires a winner side", m.Status)
	}
	if !m.Status.Decided() && m.WinnerSide != nil {
		return domain.ErrValidation("status %q must not carry a winner side", m.Status)
	}

	if m.Status == domain.MatchCompleted {
		derived, ok := DeriveWinner(m, sets)
		if !ok {
			return domain.ErrWinnerMismatch("completed match has no set-derived winner")
		}
		if derived != *m.WinnerSide {
			return domain.ErrWinnerMismatch("declared winner side %d, sets decide side %d", *m.WinnerSide, derived)
		}
	}
	// For retired and walkover the declared winner is authoritative: the
	// losing side did not finish, so no derivation applies.

	return nil
}
