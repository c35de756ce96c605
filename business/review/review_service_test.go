package review

import (
	"context"
	"errors"
	"testing"

	"myOysterGuide/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	reviews map[uint64]domain.Review
	nextID  uint64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint64]domain.Review{}, nextID: 1}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.ID = f.nextID
	f.nextID++
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return errors.New("review not found")
	}
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.reviews[id]; !ok {
		return errors.New("review not found")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uint64) (domain.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, errors.New("review not found")
	}
	return r, nil
}

func (f *fakeReviewRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByOyster(ctx context.Context, oysterID uint64) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.OysterID == oysterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUserAndOyster(ctx context.Context, userID uint, oysterID uint64) (domain.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.OysterID == oysterID {
			return r, nil
		}
	}
	return domain.Review{}, errors.New("review not found")
}

type fakeOysterRepo struct {
	oysters map[uint64]domain.Oyster

	statsOysterID uint64
	statsAvg      float64
	statsCount    int64
}

func (f *fakeOysterRepo) FindByID(ctx context.Context, id uint64) (domain.Oyster, error) {
	o, ok := f.oysters[id]
	if !ok {
		return domain.Oyster{}, errors.New("oyster not found")
	}
	return o, nil
}

func (f *fakeOysterRepo) UpdateRatingStats(ctx context.Context, oysterID uint64, avg float64, count int64) error {
	f.statsOysterID = oysterID
	f.statsAvg = avg
	f.statsCount = count
	return nil
}

func newServiceWithFakes() (*ReviewService, *fakeReviewRepo, *fakeOysterRepo) {
	reviewRepo := newFakeReviewRepo()
	oysterRepo := &fakeOysterRepo{oysters: map[uint64]domain.Oyster{
		1: {ID: 1, Name: "Belon"},
	}}
	return NewReviewService(reviewRepo, oysterRepo), reviewRepo, oysterRepo
}

func TestCreateReview_RefreshesOysterStats(t *testing.T) {
	svc, _, oysterRepo := newServiceWithFakes()
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, &domain.Review{
		UserID:   10,
		OysterID: 1,
		Rating:   domain.RatingStronglyPositive,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, float64(1), created.WeightedScore)

	assert.Equal(t, uint64(1), oysterRepo.statsOysterID)
	assert.Equal(t, 4.0, oysterRepo.statsAvg)
	assert.Equal(t, int64(1), oysterRepo.statsCount)
}

func TestCreateReview_RejectsInvalidRating(t *testing.T) {
	svc, _, _ := newServiceWithFakes()

	_, err := svc.CreateReview(context.Background(), &domain.Review{
		UserID:   10,
		OysterID: 1,
		Rating:   domain.Rating("amazing"),
	})
	require.Error(t, err)
	assert.Equal(t, "invalid rating", err.Error())
}

func TestCreateReview_RejectsOutOfRangeAttributes(t *testing.T) {
	svc, _, _ := newServiceWithFakes()

	_, err := svc.CreateReview(context.Background(), &domain.Review{
		UserID:   10,
		OysterID: 1,
		Rating:   domain.RatingPositive,
		Attributes: domain.AttributeVector{
			Size: 11, Body: 5, Sweetness: 5, Flavorfulness: 5, Creaminess: 5,
		},
	})
	require.Error(t, err)
	assert.Equal(t, "attributes must be between 1 and 10", err.Error())
}

func TestCreateReview_RejectsDuplicate(t *testing.T) {
	svc, _, _ := newServiceWithFakes()
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, &domain.Review{UserID: 10, OysterID: 1, Rating: domain.RatingNeutral})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, &domain.Review{UserID: 10, OysterID: 1, Rating: domain.RatingPositive})
	require.Error(t, err)
	assert.Equal(t, "review already exists for this oyster", err.Error())
}

func TestCreateReview_UnknownOyster(t *testing.T) {
	svc, _, _ := newServiceWithFakes()

	_, err := svc.CreateReview(context.Background(), &domain.Review{
		UserID:   10,
		OysterID: 999,
		Rating:   domain.RatingPositive,
	})
	require.Error(t, err)
}

func TestUpdateReview_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newServiceWithFakes()
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, &domain.Review{UserID: 10, OysterID: 1, Rating: domain.RatingNeutral})
	require.NoError(t, err)

	_, err = svc.UpdateReview(ctx, 99, &domain.Review{ID: created.ID, Rating: domain.RatingPositive})
	require.Error(t, err)
	assert.Equal(t, "review does not belong to user", err.Error())

	updated, err := svc.UpdateReview(ctx, 10, &domain.Review{ID: created.ID, Rating: domain.RatingPositive})
	require.NoError(t, err)
	assert.Equal(t, domain.RatingPositive, updated.Rating)
}

func TestUpdateReview_ZeroWeightKeepsExisting(t *testing.T) {
	svc, _, _ := newServiceWithFakes()
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, &domain.Review{
		UserID: 10, OysterID: 1, Rating: domain.RatingNeutral, WeightedScore: 3,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateReview(ctx, 10, &domain.Review{ID: created.ID, Rating: domain.RatingPositive})
	require.NoError(t, err)
	assert.Equal(t, float64(3), updated.WeightedScore)
}

func TestDeleteReview_RefreshesStats(t *testing.T) {
	svc, reviewRepo, oysterRepo := newServiceWithFakes()
	ctx := context.Background()

	first, err := svc.CreateReview(ctx, &domain.Review{UserID: 10, OysterID: 1, Rating: domain.RatingStronglyPositive})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, &domain.Review{UserID: 11, OysterID: 1, Rating: domain.RatingNegative})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, 10, first.ID))
	assert.Len(t, reviewRepo.reviews, 1)
	assert.Equal(t, 1.0, oysterRepo.statsAvg)
	assert.Equal(t, int64(1), oysterRepo.statsCount)
}

func TestDeleteReview_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newServiceWithFakes()
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, &domain.Review{UserID: 10, OysterID: 1, Rating: domain.RatingNeutral})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, 99, created.ID)
	require.Error(t, err)
	assert.Equal(t, "review does not belong to user", err.Error())
}
