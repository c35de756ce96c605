package recommendation

import (
	"context"
	"fmt"
)

// RatingMatrixView exposes the sparse user x oyster rating matrix one
// row at a time. Rows are assembled from the review store on demand;
// nothing is cached between requests.
type RatingMatrixView struct {
	reviewRepo ReviewRepository
}

func NewRatingMatrixView(reviewRepo ReviewRepository) *RatingMatrixView {
	return &RatingMatrixView{reviewRepo: reviewRepo}
}

// RatingsFor returns the user's row as oysterID -> numeric rating.
func (m *RatingMatrixView) RatingsFor(ctx context.Context, userID uint) (map[uint64]float64, error) {
	reviews, err := m.reviewRepo.GetReviewsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load reviews for user %d: %w", userID, err)
	}

	row := make(map[uint64]float64, len(reviews))
	for _, r := range reviews {
		if !r.Rating.Valid() {
			continue
		}
		row[r.OysterID] = r.Rating.Value()
	}

	return row, nil
}

// UserIDsWithMinReviews lists users owning at least min reviews.
func (m *RatingMatrixView) UserIDsWithMinReviews(ctx context.Context, min int) ([]uint, error) {
	ids, err := m.reviewRepo.UserIDsWithMinReviews(ctx, min)
	if err != nil {
		return nil, fmt.Errorf("load reviewer ids: %w", err)
	}

	return ids, nil
}
