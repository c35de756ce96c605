package recommendation

import (
	"context"
	"sort"

	"myOysterGuide/domain"
)

// in-memory store fakes, shared by the engine tests

type fakeStore struct {
	reviews  []domain.Review
	oysters  []domain.Oyster
	profiles map[uint]domain.TasteProfile
	users    map[uint]domain.User

	failWith error

	savedEvents []domain.RecommendationEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[uint]domain.TasteProfile),
		users:    make(map[uint]domain.User),
	}
}

func (s *fakeStore) GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	var out []domain.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) UserIDsWithMinReviews(ctx context.Context, min int) ([]uint, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	counts := make(map[uint]int)
	for _, r := range s.reviews {
		counts[r.UserID]++
	}

	var ids []uint
	for id, n := range counts {
		if n >= min {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeStore) GetAllOystersExcept(ctx context.Context, excludedIDs []uint64) ([]domain.Oyster, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	excluded := make(map[uint64]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	var out []domain.Oyster
	for _, o := range s.oysters {
		if _, skip := excluded[o.ID]; skip {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *fakeStore) GetBaselineProfile(ctx context.Context, userID uint) (*domain.TasteProfile, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	if p, ok := s.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *fakeStore) GetUsersByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	var out []domain.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeStore) SaveEvent(ctx context.Context, event domain.RecommendationEvent) error {
	s.savedEvents = append(s.savedEvents, event)
	return nil
}

func newServiceWithStore(store *fakeStore) *RecommendationService {
	return NewRecommendationService(store, store, store, store, store)
}

func attrs(size, body, sweetness, flavorfulness, creaminess int) domain.AttributeVector {
	return domain.AttributeVector{
		Size:          size,
		Body:          body,
		Sweetness:     sweetness,
		Flavorfulness: flavorfulness,
		Creaminess:    creaminess,
	}
}
