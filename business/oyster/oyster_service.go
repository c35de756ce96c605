package oyster

import (
	"context"
	"errors"

	"myOysterGuide/domain"
)

type OysterRepository interface {
	Create(ctx context.Context, oyster *domain.Oyster) error
	FindByID(ctx context.Context, id uint64) (domain.Oyster, error)
	FindAll(ctx context.Context) ([]domain.Oyster, error)
	Update(ctx context.Context, oyster *domain.Oyster) error
	Delete(ctx context.Context, id uint64) error
}

type OysterService struct {
	oysterRepo OysterRepository
}

func NewOysterService(oysterRepo OysterRepository) *OysterService {
	return &OysterService{oysterRepo: oysterRepo}
}

func validateOyster(o *domain.Oyster) error {
	if o.Name == "" {
		return errors.New("oyster name is required")
	}
	for _, v := range o.Attributes.Values() {
		if v < 1 || v > 10 {
			return errors.New("attributes must be between 1 and 10")
		}
	}
	return nil
}

func (s *OysterService) GetAllOysters(ctx context.Context) ([]domain.Oyster, error) {
	return s.oysterRepo.FindAll(ctx)
}

func (s *OysterService) GetOysterByID(ctx context.Context, id uint64) (domain.Oyster, error) {
	return s.oysterRepo.FindByID(ctx, id)
}

func (s *OysterService) CreateOyster(ctx context.Context, oyster *domain.Oyster) (*domain.Oyster, error) {
	if err := validateOyster(oyster); err != nil {
		return nil, err
	}

	if err := s.oysterRepo.Create(ctx, oyster); err != nil {
		return nil, err
	}

	return oyster, nil
}

func (s *OysterService) UpdateOyster(ctx context.Context, oyster *domain.Oyster) (*domain.Oyster, error) {
	if oyster.ID == 0 {
		return nil, errors.New("oyster id is required")
	}
	if err := validateOyster(oyster); err != nil {
		return nil, err
	}

	existing, err := s.oysterRepo.FindByID(ctx, oyster.ID)
	if err != nil {
		return nil, err
	}

	// aggregate stats are owned by the review flow, keep them
	oyster.RatingAvg = existing.RatingAvg
	oyster.RatingCount = existing.RatingCount
	oyster.CreatedAt = existing.CreatedAt

	if err := s.oysterRepo.Update(ctx, oyster); err != nil {
		return nil, err
	}

	return oyster, nil
}

func (s *OysterService) DeleteOyster(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid oyster id")
	}
	return s.oysterRepo.Delete(ctx, id)
}
