// internal/matching/ranking.go
// Diversity-aware re-ranking via Maximal Marginal Relevance.

package matching

import "sort"

const mmrLambda = 0.7

// RankWithDiversity re-orders scored recommendations to balance relevance
// against novelty. The highest-scoring candidate is taken first, then each
// position greedily maximizes lambda*relevance + (1-lambda)*diversity, where
// diversity is the minimum dissimilarity to the already-selected candidates
// (interests + travel-style Jaccard). Ties break on pool order, so output is
// deterministic for a fixed input order. O(n^2) in pool size.
func RankWithDiversity(matches []*MatchRecommendation) []*MatchRecommendation {
	if len(matches) == 0 {
		return []*MatchRecommendation{}
	}

	remaining := make([]*MatchRecommendation, len(matches))
	copy(remaining, matches)
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Score.Overall > remaining[j].Score.Overall
	})

	ranked := make([]*MatchRecommendation, 0, len(remaining))
	ranked = append(ranked, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		maxScore := -1.0
		maxIndex := 0

		for i, candidate := range remaining {
			relevance := candidate.Score.Overall

			diversity := 1.0
			for _, selected := range ranked {
				d := 1 - profileSimilarity(candidate.User, selected.User)
				if d < diversity {
					diversity = d
				}
			}

			mmr := mmrLambda*relevance + (1-mmrLambda)*diversity
			if mmr > maxScore {
				maxScore = mmr
				maxIndex = i
			}
		}

		ranked = append(ranked, remaining[maxIndex])
		remaining = append(remaining[:maxIndex], remaining[maxIndex+1:]...)
	}

	for i, m := range ranked {
		m.Rank = i + 1
	}

	return ranked
}
