package recommendation

import (
	"context"
	"fmt"

	"myOysterGuide/domain"
)

// ProfileBuilder derives a user's preferred taste vector. An explicit
// baseline profile always wins; otherwise the profile is the weighted
// average of attribute vectors from the user's positive reviews.
type ProfileBuilder struct {
	profileRepo TasteProfileRepository
	reviewRepo  ReviewRepository
}

func NewProfileBuilder(profileRepo TasteProfileRepository, reviewRepo ReviewRepository) *ProfileBuilder {
	return &ProfileBuilder{
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
	}
}

// BuildProfile returns (nil, nil) when the user has no baseline and no
// positive reviews with perceived attributes. That is an
// insufficient-signal outcome, not an error.
func (b *ProfileBuilder) BuildProfile(ctx context.Context, userID uint) (*TasteVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	baseline, err := b.profileRepo.GetBaselineProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load baseline profile: %w", err)
	}
	if baseline != nil {
		v := VectorFromAttributes(baseline.Attributes)
		return &v, nil
	}

	reviews, err := b.reviewRepo.GetReviewsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	var signal []domain.Review
	for _, r := range reviews {
		if r.Rating.IsPositive() && r.HasAttributes() {
			signal = append(signal, r)
		}
	}
	if len(signal) == 0 {
		return nil, nil
	}

	totalWeight := 0.0
	for _, r := range signal {
		if r.WeightedScore > 0 {
			totalWeight += r.WeightedScore
		}
	}

	var profile TasteVector
	if totalWeight > 0 {
		for _, r := range signal {
			if r.WeightedScore <= 0 {
				continue
			}
			values := r.Attributes.Values()
			for i := range profile {
				profile[i] += values[i] * r.WeightedScore
			}
		}
		for i := range profile {
			profile[i] /= totalWeight
		}
	} else {
		// all weights zero: plain arithmetic mean
		for _, r := range signal {
			values := r.Attributes.Values()
			for i := range profile {
				profile[i] += values[i]
			}
		}
		for i := range profile {
			profile[i] /= float64(len(signal))
		}
	}

	return &profile, nil
}
