package briefs

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/stacktracker/intelgen/internal/types"
)

var similarityMetric = metrics.NewSorensenDice()

// candidate is one raw search item on its way through dedup/rank/cap.
// RelevanceScore holds the raw upstream value (0 when absent) so that ranking
// sees what the model actually returned; the insert-time default and clamp
// are applied only when the row is built.
type candidate struct {
	types.IntelligenceBrief
	scored bool
}

// TitleSimilarity returns a normalized similarity ratio in [0,1] between two
// titles, ignoring case.
func TitleSimilarity(a, b string) float64 {
	return strutil.Similarity(strings.ToLower(a), strings.ToLower(b), similarityMetric)
}

// dedup removes near-duplicate candidates greedily in collection order: an
// item is discarded when its title is more than TitleSimilarityThreshold
// similar to any already accepted title, so the first-seen item wins.
// Candidates without a title are dropped.
func dedup(candidates []candidate) []candidate {
	var kept []candidate
	for _, cand := range candidates {
		if cand.Title == "" {
			continue
		}
		isDupe := false
		for _, existing := range kept {
			if TitleSimilarity(cand.Title, existing.Title) > types.TitleSimilarityThreshold {
				isDupe = true
				break
			}
		}
		if !isDupe {
			kept = append(kept, cand)
		}
	}
	return kept
}

// rank sorts candidates by raw relevance score descending. The sort is stable
// so ties preserve collection order.
func rank(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})
}

// ClampScore forces a relevance score into the valid [1,100] range.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}
