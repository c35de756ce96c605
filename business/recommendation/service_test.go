package recommendation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"myOysterGuide/domain"
)

// seedDenseStore creates a store where user 1 has rated oysters 1-3 and
// many unrated oysters plus overlapping raters exist.
func seedDenseStore() *fakeStore {
	store := newFakeStore()

	for i := 1; i <= 60; i++ {
		store.oysters = append(store.oysters, domain.Oyster{
			ID:         uint64(i),
			Name:       "oyster",
			Attributes: attrs(1+i%9, 1+(i*2)%9, 1+(i*3)%9, 1+(i*5)%9, 1+(i*7)%9),
			RatingAvg:  float64(i%4) + 0.5,
		})
	}

	// user 1: three rated oysters with perceived attributes
	store.reviews = append(store.reviews,
		domain.Review{UserID: 1, OysterID: 1, Rating: domain.RatingStronglyPositive, Attributes: attrs(3, 4, 8, 7, 6), WeightedScore: 2},
		domain.Review{UserID: 1, OysterID: 2, Rating: domain.RatingPositive, Attributes: attrs(4, 4, 7, 7, 5), WeightedScore: 1},
		domain.Review{UserID: 1, OysterID: 3, Rating: domain.RatingNegative, WeightedScore: 1},
	)

	// users 2-5 rate overlapping sets
	for u := uint(2); u <= 5; u++ {
		for i := 1; i <= 40; i += int(u) {
			rating := domain.RatingPositive
			if i%3 == 0 {
				rating = domain.RatingStronglyPositive
			}
			store.reviews = append(store.reviews, domain.Review{
				UserID: u, OysterID: uint64(i), Rating: rating,
			})
		}
		store.users[u] = domain.User{ID: u, FullName: "neighbor"}
	}
	store.users[1] = domain.User{ID: 1, FullName: "requester"}

	return store
}

func TestRecommend_ExclusionInvariant(t *testing.T) {
	store := seedDenseStore()
	svc := newServiceWithStore(store)

	reviewed := map[uint64]bool{1: true, 2: true, 3: true}

	for _, mode := range []Mode{ModeAttribute, ModeCollaborative, ModeHybrid} {
		result, err := svc.Recommend(context.Background(), 1, mode, 50)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mode, err)
		}
		for _, item := range result.Items {
			if reviewed[item.Oyster.ID] {
				t.Errorf("%s: already-reviewed oyster %d in output", mode, item.Oyster.ID)
			}
		}
	}
}

func TestRecommend_LimitClamping(t *testing.T) {
	store := seedDenseStore()
	svc := newServiceWithStore(store)

	result, err := svc.Recommend(context.Background(), 1, ModeAttribute, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) > MaxRecommendationLimit {
		t.Errorf("limit 100 returned %d items, max is %d", len(result.Items), MaxRecommendationLimit)
	}

	result, err = svc.Recommend(context.Background(), 1, ModeAttribute, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("negative limit clamps to 1, got %d items", len(result.Items))
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	store := seedDenseStore()
	svc := newServiceWithStore(store)

	for _, mode := range []Mode{ModeAttribute, ModeCollaborative, ModeHybrid} {
		first, err := svc.Recommend(context.Background(), 1, mode, 20)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mode, err)
		}
		second, err := svc.Recommend(context.Background(), 1, mode, 20)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mode, err)
		}
		if !reflect.DeepEqual(first.Items, second.Items) {
			t.Errorf("%s: identical snapshot produced different output", mode)
		}
	}
}

func TestRecommend_AttributeEndToEnd(t *testing.T) {
	store := newFakeStore()
	store.oysters = []domain.Oyster{
		{ID: 1, Name: "Oyster A", Attributes: attrs(3, 4, 8, 7, 6)},
		{ID: 2, Name: "Oyster B", Attributes: attrs(7, 8, 3, 9, 8)},
		{ID: 3, Name: "Oyster C", Attributes: attrs(5, 6, 5, 6, 5)},
	}
	store.reviews = []domain.Review{
		{UserID: 1, OysterID: 1, Rating: domain.RatingStronglyPositive, Attributes: attrs(3, 4, 8, 7, 6), WeightedScore: 1},
	}

	svc := newServiceWithStore(store)

	result, err := svc.Recommend(context.Background(), 1, ModeAttribute, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	// A is already reviewed, C sits closer to the derived profile than B
	if result.Items[0].Oyster.ID != 3 || result.Items[1].Oyster.ID != 2 {
		t.Errorf("got order [%d %d], want [3 2]", result.Items[0].Oyster.ID, result.Items[1].Oyster.ID)
	}
}

func TestRecommend_CollaborativeEndToEnd(t *testing.T) {
	store := newFakeStore()
	store.oysters = []domain.Oyster{
		{ID: 1, Name: "Oyster A"},
		{ID: 2, Name: "Oyster B"},
		{ID: 3}, {ID: 4},
	}
	// Y (user 1) and Z (user 2) agree on oyster A; Z also liked B
	store.reviews = []domain.Review{
		{UserID: 1, OysterID: 1, Rating: domain.RatingStronglyPositive},
		{UserID: 1, OysterID: 3, Rating: domain.RatingNeutral},
		{UserID: 1, OysterID: 4, Rating: domain.RatingNegative},
		{UserID: 2, OysterID: 1, Rating: domain.RatingStronglyPositive},
		{UserID: 2, OysterID: 2, Rating: domain.RatingPositive},
	}

	svc := newServiceWithStore(store)

	result, err := svc.Recommend(context.Background(), 1, ModeCollaborative, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, item := range result.Items {
		if item.Oyster.ID == 2 {
			found = true
			if item.Neighbors != 1 {
				t.Errorf("oyster B should be attributed to one neighbor, got %d", item.Neighbors)
			}
		}
	}
	if !found {
		t.Error("oyster B must be recommended via Z's similarity")
	}
}

func TestRecommend_InsufficientSignalReasons(t *testing.T) {
	store := newFakeStore()
	store.oysters = []domain.Oyster{{ID: 1, Attributes: attrs(5, 5, 5, 5, 5)}}

	svc := newServiceWithStore(store)

	result, err := svc.Recommend(context.Background(), 7, ModeAttribute, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 0 || result.Reason != ReasonNoProfile {
		t.Errorf("got items=%d reason=%q", len(result.Items), result.Reason)
	}

	result, err = svc.Recommend(context.Background(), 7, ModeCollaborative, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 0 || result.Reason != ReasonInsufficientReviews {
		t.Errorf("got items=%d reason=%q", len(result.Items), result.Reason)
	}
}

func TestRecommend_StoreFailurePropagates(t *testing.T) {
	store := seedDenseStore()
	store.failWith = errors.New("connection refused")

	svc := newServiceWithStore(store)

	if _, err := svc.Recommend(context.Background(), 1, ModeAttribute, 10); err == nil {
		t.Error("store failure must propagate as an error")
	}
	if _, err := svc.SimilarUsers(context.Background(), 1, 10); err == nil {
		t.Error("store failure must propagate as an error")
	}
}

func TestRecommend_UnknownMode(t *testing.T) {
	svc := newServiceWithStore(newFakeStore())

	if _, err := svc.Recommend(context.Background(), 1, Mode("popular"), 10); err == nil {
		t.Error("unknown mode must be rejected")
	}
}

func TestRecommend_EventLogged(t *testing.T) {
	store := seedDenseStore()
	svc := newServiceWithStore(store)

	_, err := svc.Recommend(context.Background(), 1, ModeHybrid, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.savedEvents) != 1 {
		t.Fatalf("got %d saved events, want 1", len(store.savedEvents))
	}
	event := store.savedEvents[0]
	if event.UserID != 1 || event.Mode != string(ModeHybrid) {
		t.Errorf("event mismatch: %+v", event)
	}
}
