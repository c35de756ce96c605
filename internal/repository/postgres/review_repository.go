package postgres

import (
	"context"
	"errors"
	"fmt"

	"myOysterGuide/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"rating":             review.Rating,
		"comment":            review.Comment,
		"attr_size":          review.Attributes.Size,
		"attr_body":          review.Attributes.Body,
		"attr_sweetness":     review.Attributes.Sweetness,
		"attr_flavorfulness": review.Attributes.Flavorfulness,
		"attr_creaminess":    review.Attributes.Creaminess,
		"weighted_score":     review.WeightedScore,
		"updated_at":         review.UpdatedAt,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", review.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("review not found")
	}

	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("review not found or already deleted")
	}

	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var review domain.Review

	err := r.DB.WithContext(ctx).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, errors.New("review not found")
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews for user: %w", err)
	}

	return reviews, nil
}

// GetReviewsForUser is the engine's read contract; same row set as
// FindByUser.
func (r *ReviewRepository) GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return r.FindByUser(ctx, userID)
}

func (r *ReviewRepository) FindByOyster(ctx context.Context, oysterID uint64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("oyster_id = ?", oysterID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews for oyster: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByUserAndOyster(ctx context.Context, userID uint, oysterID uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var review domain.Review

	err := r.DB.WithContext(ctx).Where("user_id = ? AND oyster_id = ?", userID, oysterID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, errors.New("review not found")
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}

// UserIDsWithMinReviews lists users owning at least min reviews,
// ordered for reproducible computations.
func (r *ReviewRepository) UserIDsWithMinReviews(ctx context.Context, min int) ([]uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Select("user_id").
		Group("user_id").
		Having("COUNT(*) >= ?", min).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewer ids: %w", err)
	}

	return ids, nil
}
