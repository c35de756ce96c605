package postgres

import (
	"context"
	"errors"
	"fmt"

	"myOysterGuide/domain"

	"gorm.io/gorm"
)

type OysterRepository struct {
	DB *gorm.DB
}

func NewOysterRepository(db *gorm.DB) *OysterRepository {
	return &OysterRepository{
		DB: db,
	}
}

func (r *OysterRepository) Create(ctx context.Context, oyster *domain.Oyster) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(oyster).Error; err != nil {
		return fmt.Errorf("failed to create oyster: %w", err)
	}

	return nil
}

func (r *OysterRepository) FindByID(ctx context.Context, id uint64) (domain.Oyster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Oyster{}, fmt.Errorf("context error: %w", err)
	}

	var oyster domain.Oyster

	err := r.DB.WithContext(ctx).First(&oyster, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Oyster{}, errors.New("oyster not found")
		}
		return domain.Oyster{}, fmt.Errorf("failed to find oyster: %w", err)
	}

	return oyster, nil
}

func (r *OysterRepository) FindAll(ctx context.Context) ([]domain.Oyster, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var oysters []domain.Oyster
	err := r.DB.WithContext(ctx).Order("id").Find(&oysters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find oysters: %w", err)
	}

	return oysters, nil
}

// GetAllOystersExcept returns every oyster except the given ids, the
// candidate set for a recommendation request.
func (r *OysterRepository) GetAllOystersExcept(ctx context.Context, excludedIDs []uint64) ([]domain.Oyster, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var oysters []domain.Oyster
	query := r.DB.WithContext(ctx).Order("id")
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}

	if err := query.Find(&oysters).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate oysters: %w", err)
	}

	return oysters, nil
}

func (r *OysterRepository) Update(ctx context.Context, oyster *domain.Oyster) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":               oyster.Name,
		"origin":             oyster.Origin,
		"species":            oyster.Species,
		"attr_size":          oyster.Attributes.Size,
		"attr_body":          oyster.Attributes.Body,
		"attr_sweetness":     oyster.Attributes.Sweetness,
		"attr_flavorfulness": oyster.Attributes.Flavorfulness,
		"attr_creaminess":    oyster.Attributes.Creaminess,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Oyster{}).Where("id = ?", oyster.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update oyster: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("oyster not found")
	}

	return nil
}

func (r *OysterRepository) UpdateRatingStats(ctx context.Context, oysterID uint64, avg float64, count int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Oyster{}).Where("id = ?", oysterID).Updates(map[string]interface{}{
		"rating_avg":   avg,
		"rating_count": count,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update oyster stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("oyster not found")
	}

	return nil
}

func (r *OysterRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Oyster{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete oyster: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("oyster not found or already deleted")
	}

	return nil
}
