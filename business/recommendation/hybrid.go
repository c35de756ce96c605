package recommendation

import (
	"sort"

	"myOysterGuide/domain"
)

// Hybrid blend weights. Policy constants, tunable without touching the
// combination logic.
const (
	AttributeWeight     = 0.6
	CollaborativeWeight = 0.4
)

// normalizeCollabScore rescales a predicted rating (1-4 scale) to the
// 0-100 score range shared by all modes.
func normalizeCollabScore(predicted float64) float64 {
	minRating := domain.RatingNegative.Value()
	maxRating := domain.RatingStronglyPositive.Value()

	if predicted <= minRating {
		return 0
	}
	if predicted >= maxRating {
		return 100
	}

	return 100 * (predicted - minRating) / (maxRating - minRating)
}

// HybridCombiner merges attribute and collaborative rankings into one
// weighted list.
type HybridCombiner struct{}

func NewHybridCombiner() *HybridCombiner {
	return &HybridCombiner{}
}

type hybridEntry struct {
	oyster      domain.Oyster
	attrScore   float64
	collabScore float64
	matchReason string
	neighbors   int
	combined    float64
}

// Combine blends the two result lists. An oyster present on only one
// side keeps that side's contribution and gets zero for the other, so
// single-source candidates stay eligible but penalized.
func (c *HybridCombiner) Combine(attribute, collaborative []domain.RecommendedOyster, limit int) []domain.RecommendedOyster {
	if limit <= 0 {
		return []domain.RecommendedOyster{}
	}

	entries := make(map[uint64]*hybridEntry)

	for _, rec := range attribute {
		entries[rec.Oyster.ID] = &hybridEntry{
			oyster:      rec.Oyster,
			attrScore:   rec.Score,
			matchReason: rec.MatchReason,
		}
	}

	for _, rec := range collaborative {
		entry, ok := entries[rec.Oyster.ID]
		if !ok {
			entry = &hybridEntry{oyster: rec.Oyster}
			entries[rec.Oyster.ID] = entry
		}
		entry.collabScore = normalizeCollabScore(rec.Score)
		entry.neighbors = rec.Neighbors
	}

	merged := make([]*hybridEntry, 0, len(entries))
	for _, entry := range entries {
		entry.combined = AttributeWeight*entry.attrScore + CollaborativeWeight*entry.collabScore
		merged = append(merged, entry)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].combined != merged[j].combined {
			return merged[i].combined > merged[j].combined
		}
		if hi, hj := maxScore(merged[i]), maxScore(merged[j]); hi != hj {
			return hi > hj
		}
		return merged[i].oyster.ID < merged[j].oyster.ID
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}

	results := make([]domain.RecommendedOyster, 0, len(merged))
	for _, entry := range merged {
		results = append(results, domain.RecommendedOyster{
			Oyster:      entry.oyster,
			Score:       entry.combined,
			MatchReason: entry.matchReason,
			Neighbors:   entry.neighbors,
		})
	}

	return results
}

func maxScore(e *hybridEntry) float64 {
	if e.attrScore > e.collabScore {
		return e.attrScore
	}
	return e.collabScore
}
