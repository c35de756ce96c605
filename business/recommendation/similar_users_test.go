package recommendation

import (
	"context"
	"fmt"
	"testing"

	"myOysterGuide/domain"
)

func TestFindSimilar_SelfExcluded(t *testing.T) {
	store := newFakeStore()
	store.users[1] = domain.User{ID: 1, FullName: "Ava"}
	store.users[2] = domain.User{ID: 2, FullName: "Ben"}
	store.reviews = []domain.Review{
		{UserID: 1, OysterID: 1, Rating: domain.RatingStronglyPositive},
		{UserID: 2, OysterID: 1, Rating: domain.RatingStronglyPositive},
	}

	finder := NewSimilarUserFinder(NewRatingMatrixView(store), store)

	results, err := finder.FindSimilar(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ID == 1 {
		t.Error("requesting user appeared in their own similar-users result")
	}
	if results[0].ID != 2 || results[0].FullName != "Ben" {
		t.Errorf("got %+v, want user 2 (Ben)", results[0])
	}
	if results[0].Similarity != 1.0 {
		t.Errorf("one shared identical rating must give similarity 1.0, got %v", results[0].Similarity)
	}
}

func TestFindSimilar_LimitCapped(t *testing.T) {
	store := newFakeStore()
	// 30 users all rate the same oyster the same way
	for i := 1; i <= 30; i++ {
		id := uint(i)
		store.users[id] = domain.User{ID: id, FullName: fmt.Sprintf("user-%d", i)}
		store.reviews = append(store.reviews, domain.Review{
			UserID: id, OysterID: 1, Rating: domain.RatingPositive,
		})
	}

	finder := NewSimilarUserFinder(NewRatingMatrixView(store), store)

	results, err := finder.FindSimilar(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != MaxSimilarUsers {
		t.Errorf("got %d results, cap is %d", len(results), MaxSimilarUsers)
	}
}

func TestFindSimilar_NoHistory(t *testing.T) {
	store := newFakeStore()
	store.reviews = []domain.Review{
		{UserID: 2, OysterID: 1, Rating: domain.RatingPositive},
	}

	finder := NewSimilarUserFinder(NewRatingMatrixView(store), store)

	results, err := finder.FindSimilar(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("user without reviews must get an empty result, got %d", len(results))
	}
}
