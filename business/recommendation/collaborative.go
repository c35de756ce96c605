package recommendation

import (
	"context"
	"fmt"
	"sort"

	"myOysterGuide/domain"
)

// MinReviewsForCollaborative is the policy threshold below which a user
// has too little rating history for user-based filtering.
const MinReviewsForCollaborative = 3

type neighbor struct {
	userID  uint
	sim     float64
	ratings map[uint64]float64
}

// CollaborativeRecommender ranks candidates by the similarity-weighted
// ratings of users with overlapping taste history.
type CollaborativeRecommender struct {
	matrix *RatingMatrixView
}

func NewCollaborativeRecommender(matrix *RatingMatrixView) *CollaborativeRecommender {
	return &CollaborativeRecommender{matrix: matrix}
}

// neighborsOf finds every other user with positive cosine similarity to
// the given rating row, ordered by user ID so downstream float sums are
// reproducible.
func (r *CollaborativeRecommender) neighborsOf(ctx context.Context, userID uint, own map[uint64]float64) ([]neighbor, error) {
	otherIDs, err := r.matrix.UserIDsWithMinReviews(ctx, 1)
	if err != nil {
		return nil, err
	}
	sort.Slice(otherIDs, func(i, j int) bool { return otherIDs[i] < otherIDs[j] })

	neighbors := make([]neighbor, 0)
	for _, otherID := range otherIDs {
		if otherID == userID {
			continue
		}

		row, err := r.matrix.RatingsFor(ctx, otherID)
		if err != nil {
			return nil, err
		}

		sim, common := cosineOverlap(own, row)
		if common == 0 || sim <= 0 {
			continue
		}

		neighbors = append(neighbors, neighbor{userID: otherID, sim: sim, ratings: row})
	}

	return neighbors, nil
}

// Recommend predicts a score for every candidate the user has not rated
// as the similarity-weighted average of neighbor ratings. Predicted
// scores stay on the numeric rating scale; callers rescale for display.
// Users below the review threshold get an empty list.
func (r *CollaborativeRecommender) Recommend(ctx context.Context, userID uint, candidates []domain.Oyster, limit int) ([]domain.RecommendedOyster, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(candidates) == 0 || limit <= 0 {
		return []domain.RecommendedOyster{}, nil
	}

	own, err := r.matrix.RatingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(own) < MinReviewsForCollaborative {
		return []domain.RecommendedOyster{}, nil
	}

	neighbors, err := r.neighborsOf(ctx, userID, own)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []domain.RecommendedOyster{}, nil
	}

	results := make([]domain.RecommendedOyster, 0, len(candidates))
	for _, oyster := range candidates {
		if _, rated := own[oyster.ID]; rated {
			continue
		}

		var weighted, simSum float64
		contributors := 0
		for _, n := range neighbors {
			rating, ok := n.ratings[oyster.ID]
			if !ok {
				continue
			}
			weighted += n.sim * rating
			simSum += n.sim
			contributors++
		}
		if contributors == 0 {
			// no similar neighbor rated it, cannot be scored
			continue
		}

		results = append(results, domain.RecommendedOyster{
			Oyster:    oyster,
			Score:     weighted / simSum,
			Neighbors: contributors,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Neighbors != results[j].Neighbors {
			return results[i].Neighbors > results[j].Neighbors
		}
		return results[i].Oyster.ID < results[j].Oyster.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
