package matching

import (
	"sort"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// DefaultLimit is the result cap when the caller does not supply one.
const DefaultLimit = 15

// ScoredCandidate pairs a surviving candidate with its relevance score.
type ScoredCandidate struct {
	Recommendation *types.Recommendation
	Score          float64
}

// Match runs the full pipeline for a profile: filter, score, discard
// candidates with no meaningful bonus, rank descending, truncate to limit.
// Ties keep the insertion order of the filtered candidate set.
func Match(profile *types.UserProfile, corpus []*types.Recommendation, limit int) []ScoredCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	candidates := FilterCandidates(profile, corpus)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, rec := range candidates {
		score := Score(profile, rec)
		if score <= DiscardThreshold {
			continue
		}
		scored = append(scored, ScoredCandidate{Recommendation: rec, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// PriorityFor maps a relevance score to its priority tier. The thresholds are
// total and non-overlapping: every score in [0,1] lands in exactly one tier.
func PriorityFor(score float64) types.PriorityLevel {
	switch {
	case score >= 0.8:
		return types.PriorityCritical
	case score >= 0.6:
		return types.PriorityHigh
	case score >= 0.4:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}
