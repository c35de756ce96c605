package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myOysterGuide/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TasteProfileRepository struct {
	DB *gorm.DB
}

func NewTasteProfileRepository(db *gorm.DB) *TasteProfileRepository {
	return &TasteProfileRepository{
		DB: db,
	}
}

// FindByUser returns nil without error when the user has no baseline
// profile; the engine treats absence as "derive from reviews".
func (r *TasteProfileRepository) FindByUser(ctx context.Context, userID uint) (*domain.TasteProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var profile domain.TasteProfile

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find taste profile: %w", err)
	}

	return &profile, nil
}

// GetBaselineProfile is the engine's read contract.
func (r *TasteProfileRepository) GetBaselineProfile(ctx context.Context, userID uint) (*domain.TasteProfile, error) {
	return r.FindByUser(ctx, userID)
}

func (r *TasteProfileRepository) Upsert(ctx context.Context, profile *domain.TasteProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"attr_size", "attr_body", "attr_sweetness", "attr_flavorfulness", "attr_creaminess", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert taste profile: %w", err)
	}

	return nil
}

func (r *TasteProfileRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.TasteProfile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete taste profile: %w", result.Error)
	}

	return nil
}
