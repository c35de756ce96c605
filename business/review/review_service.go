package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (domain.Review, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Review, error)
	FindByOyster(ctx context.Context, oysterID uint64) ([]domain.Review, error)
	FindByUserAndOyster(ctx context.Context, userID uint, oysterID uint64) (domain.Review, error)
}

type OysterRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Oyster, error)
	UpdateRatingStats(ctx context.Context, oysterID uint64, avg float64, count int64) error
}

type ReviewService struct {
	reviewRepo ReviewRepository
	oysterRepo OysterRepository
}

func NewReviewService(reviewRepo ReviewRepository, oysterRepo OysterRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		oysterRepo: oysterRepo,
	}
}

func validateAttributes(a domain.AttributeVector) error {
	if a.IsZero() {
		return nil
	}
	for _, v := range a.Values() {
		if v < 1 || v > 10 {
			return errors.New("attributes must be between 1 and 10")
		}
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if !review.Rating.Valid() {
		return nil, errors.New("invalid rating")
	}
	if err := validateAttributes(review.Attributes); err != nil {
		return nil, err
	}
	if review.WeightedScore < 0 {
		return nil, errors.New("weighted score cannot be negative")
	}

	if _, err := s.oysterRepo.FindByID(ctx, review.OysterID); err != nil {
		return nil, err
	}

	// the store enforces the unique (user, oyster) index too; checking
	// here gives a friendlier error
	existing, err := s.reviewRepo.FindByUserAndOyster(ctx, review.UserID, review.OysterID)
	if err == nil && existing.ID > 0 {
		return nil, errors.New("review already exists for this oyster")
	}

	if review.WeightedScore == 0 {
		review.WeightedScore = 1
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshOysterStats(ctx, review.OysterID); err != nil {
		logger.Error("failed to refresh oyster stats", err, "oyster_id", review.OysterID)
	}

	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID uint, review *domain.Review) (*domain.Review, error) {
	existing, err := s.reviewRepo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, errors.New("review does not belong to user")
	}
	if !review.Rating.Valid() {
		return nil, errors.New("invalid rating")
	}
	if err := validateAttributes(review.Attributes); err != nil {
		return nil, err
	}

	existing.Rating = review.Rating
	existing.Comment = review.Comment
	existing.Attributes = review.Attributes
	if review.WeightedScore > 0 {
		existing.WeightedScore = review.WeightedScore
	}
	existing.UpdatedAt = time.Now()

	if err := s.reviewRepo.Update(ctx, &existing); err != nil {
		return nil, err
	}

	if err := s.refreshOysterStats(ctx, existing.OysterID); err != nil {
		logger.Error("failed to refresh oyster stats", err, "oyster_id", existing.OysterID)
	}

	return &existing, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID uint, id uint64) error {
	existing, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("review does not belong to user")
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.refreshOysterStats(ctx, existing.OysterID); err != nil {
		logger.Error("failed to refresh oyster stats", err, "oyster_id", existing.OysterID)
	}

	return nil
}

func (s *ReviewService) GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return s.reviewRepo.FindByUser(ctx, userID)
}

func (s *ReviewService) GetReviewsForOyster(ctx context.Context, oysterID uint64) ([]domain.Review, error) {
	return s.reviewRepo.FindByOyster(ctx, oysterID)
}

// refreshOysterStats recomputes the aggregate community rating after a
// review changes.
func (s *ReviewService) refreshOysterStats(ctx context.Context, oysterID uint64) error {
	reviews, err := s.reviewRepo.FindByOyster(ctx, oysterID)
	if err != nil {
		return fmt.Errorf("load oyster reviews: %w", err)
	}

	var sum float64
	count := int64(0)
	for _, r := range reviews {
		if !r.Rating.Valid() {
			continue
		}
		sum += r.Rating.Value()
		count++
	}

	avg := 0.0
	if count > 0 {
		avg = sum / float64(count)
	}

	return s.oysterRepo.UpdateRatingStats(ctx, oysterID, avg, count)
}
