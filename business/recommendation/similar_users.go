package recommendation

import (
	"context"
	"fmt"
	"sort"

	"myOysterGuide/domain"
)

// MaxSimilarUsers caps the similar-users result size regardless of the
// caller's limit.
const MaxSimilarUsers = 20

// SimilarUserFinder ranks other users by rating-pattern similarity.
type SimilarUserFinder struct {
	matrix   *RatingMatrixView
	userRepo UserRepository
}

func NewSimilarUserFinder(matrix *RatingMatrixView, userRepo UserRepository) *SimilarUserFinder {
	return &SimilarUserFinder{
		matrix:   matrix,
		userRepo: userRepo,
	}
}

// FindSimilar returns up to limit users ordered by descending cosine
// similarity with the requesting user. Only id, display name and
// similarity are exposed.
func (f *SimilarUserFinder) FindSimilar(ctx context.Context, userID uint, limit int) ([]domain.SimilarUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit < 1 {
		limit = 1
	}
	if limit > MaxSimilarUsers {
		limit = MaxSimilarUsers
	}

	own, err := f.matrix.RatingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(own) == 0 {
		return []domain.SimilarUser{}, nil
	}

	otherIDs, err := f.matrix.UserIDsWithMinReviews(ctx, 1)
	if err != nil {
		return nil, err
	}

	type scored struct {
		userID uint
		sim    float64
	}
	matches := make([]scored, 0)

	for _, otherID := range otherIDs {
		if otherID == userID {
			continue
		}

		row, err := f.matrix.RatingsFor(ctx, otherID)
		if err != nil {
			return nil, err
		}

		sim, common := cosineOverlap(own, row)
		if common == 0 || sim <= 0 {
			continue
		}

		matches = append(matches, scored{userID: otherID, sim: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].sim != matches[j].sim {
			return matches[i].sim > matches[j].sim
		}
		return matches[i].userID < matches[j].userID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	if len(matches) == 0 {
		return []domain.SimilarUser{}, nil
	}

	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.userID)
	}

	users, err := f.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load similar users: %w", err)
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	results := make([]domain.SimilarUser, 0, len(matches))
	for _, m := range matches {
		results = append(results, domain.SimilarUser{
			ID:         m.userID,
			FullName:   names[m.userID],
			Similarity: m.sim,
		})
	}

	return results, nil
}
