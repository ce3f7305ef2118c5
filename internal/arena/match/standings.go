package match

import (
	"sort"
)

// computeStandings ranks every participant once, at match end. Score descending;
// ties go to whoever lasted longer (survivors beat the eliminated, later
// eliminations beat earlier ones), then to the earlier join order. Ranks are
// dense 1-based and every tie is broken, so they are simply positional.
func (r *Session) computeStandings() []StandingEntry {
	pool := r.participants()

	sorted := make([]*Player, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		aOut, bOut := !a.eliminatedAt.IsZero(), !b.eliminatedAt.IsZero()
		switch {
		case aOut != bOut:
			return !aOut
		case aOut && bOut && !a.eliminatedAt.Equal(b.eliminatedAt):
			return a.eliminatedAt.After(b.eliminatedAt)
		default:
			return a.JoinOrder < b.JoinOrder
		}
	})

	standings := make([]StandingEntry, len(sorted))
	for i, p := range sorted {
		standings[i] = StandingEntry{
			Rank:     i + 1,
			PlayerID: p.ID,
			Username: p.Username,
			Role:     p.Role,
			Score:    p.Score,
		}
	}
	return standings
}
