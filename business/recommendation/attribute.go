package recommendation

import (
	"fmt"
	"sort"

	"myOysterGuide/domain"
)

// AttributeRecommender ranks candidate oysters by closeness between the
// user's taste profile and each oyster's attribute vector.
type AttributeRecommender struct{}

func NewAttributeRecommender() *AttributeRecommender {
	return &AttributeRecommender{}
}

// attributeScore maps Euclidean distance to a 0-100 score. Distance 0
// scores 100 and the score falls linearly to 0 at the maximum possible
// distance, so closer always scores strictly higher.
func attributeScore(distance float64) float64 {
	if distance <= 0 {
		return 100
	}
	if distance >= maxAttributeDistance {
		return 0
	}

	return 100 * (1 - distance/maxAttributeDistance)
}

// matchReason names the one or two dimensions where the candidate sits
// closest to the profile. Purely descriptive, never used for ranking.
func matchReason(profile TasteVector, attrs domain.AttributeVector) string {
	values := attrs.Values()

	idx := make([]int, domain.AttributeDims)
	gaps := make([]float64, domain.AttributeDims)
	for i := range gaps {
		idx[i] = i
		gap := profile[i] - values[i]
		if gap < 0 {
			gap = -gap
		}
		gaps[i] = gap
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return gaps[idx[a]] < gaps[idx[b]]
	})

	first, second := idx[0], idx[1]
	// name a second dimension only when it is about as close as the first
	if gaps[second] <= gaps[first]+1 {
		return fmt.Sprintf("similar %s and %s", domain.AttributeNames[first], domain.AttributeNames[second])
	}

	return fmt.Sprintf("similar %s", domain.AttributeNames[first])
}

// Recommend scores every candidate against the profile and returns the
// top entries. A nil profile or empty candidate set yields an empty
// list.
func (r *AttributeRecommender) Recommend(profile *TasteVector, candidates []domain.Oyster, limit int) []domain.RecommendedOyster {
	if profile == nil || len(candidates) == 0 || limit <= 0 {
		return []domain.RecommendedOyster{}
	}

	results := make([]domain.RecommendedOyster, 0, len(candidates))
	for _, oyster := range candidates {
		distance := profile.DistanceTo(VectorFromAttributes(oyster.Attributes))
		results = append(results, domain.RecommendedOyster{
			Oyster:      oyster,
			Score:       attributeScore(distance),
			MatchReason: matchReason(*profile, oyster.Attributes),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Oyster.RatingAvg != results[j].Oyster.RatingAvg {
			return results[i].Oyster.RatingAvg > results[j].Oyster.RatingAvg
		}
		return results[i].Oyster.ID < results[j].Oyster.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}
