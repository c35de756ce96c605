package recommendation

import (
	"math"
	"testing"

	"myOysterGuide/domain"
)

func TestNormalizeCollabScore(t *testing.T) {
	cases := []struct {
		predicted float64
		want      float64
	}{
		{1, 0},
		{4, 100},
		{2.5, 50},
		{0.5, 0},  // below scale clamps
		{4.5, 100}, // above scale clamps
	}

	for _, tc := range cases {
		if got := normalizeCollabScore(tc.predicted); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("normalizeCollabScore(%v) = %v, want %v", tc.predicted, got, tc.want)
		}
	}
}

func TestCombine_WeightedBlend(t *testing.T) {
	attribute := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 1}, Score: 80, MatchReason: "similar size"},
		{Oyster: domain.Oyster{ID: 2}, Score: 60},
	}
	collaborative := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 2}, Score: 4, Neighbors: 3}, // normalizes to 100
	}

	combiner := NewHybridCombiner()
	results := combiner.Combine(attribute, collaborative, 10)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// oyster 2: 0.6*60 + 0.4*100 = 76; oyster 1: 0.6*80 = 48
	if results[0].Oyster.ID != 2 {
		t.Errorf("top result: got oyster %d want 2", results[0].Oyster.ID)
	}
	if math.Abs(results[0].Score-76) > 1e-9 {
		t.Errorf("oyster 2 combined score: got %v want 76", results[0].Score)
	}
	if math.Abs(results[1].Score-48) > 1e-9 {
		t.Errorf("oyster 1 combined score: got %v want 48", results[1].Score)
	}
	if results[0].Neighbors != 3 {
		t.Errorf("neighbor count lost in blend: got %d", results[0].Neighbors)
	}
	if results[1].MatchReason != "similar size" {
		t.Errorf("match reason lost in blend: got %q", results[1].MatchReason)
	}
}

func TestCombine_AttributeOnlyGetsExactShare(t *testing.T) {
	attribute := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 1}, Score: 70},
		{Oyster: domain.Oyster{ID: 2}, Score: 70},
	}
	collaborative := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 2}, Score: 2, Neighbors: 1},
	}

	combiner := NewHybridCombiner()
	results := combiner.Combine(attribute, collaborative, 10)

	// attribute-only oyster scores exactly 0.6 * attributeScore
	var only, both domain.RecommendedOyster
	for _, r := range results {
		if r.Oyster.ID == 1 {
			only = r
		} else {
			both = r
		}
	}

	if math.Abs(only.Score-0.6*70) > 1e-9 {
		t.Errorf("attribute-only score: got %v want %v", only.Score, 0.6*70)
	}
	if both.Score <= only.Score {
		t.Errorf("equal attribute score plus collaborative signal must rank higher: %v <= %v", both.Score, only.Score)
	}
}

func TestCombine_TieBreaks(t *testing.T) {
	// same combined score, different individual highs
	attribute := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 1}, Score: 50}, // combined 30, high 50
	}
	collaborative := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 2}, Score: 3.25}, // normalizes to 75, combined 30, high 75
	}

	combiner := NewHybridCombiner()
	results := combiner.Combine(attribute, collaborative, 10)

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Oyster.ID != 2 {
		t.Errorf("higher individual score must win the tie, got oyster %d first", results[0].Oyster.ID)
	}
}

func TestCombine_Truncates(t *testing.T) {
	attribute := []domain.RecommendedOyster{
		{Oyster: domain.Oyster{ID: 1}, Score: 90},
		{Oyster: domain.Oyster{ID: 2}, Score: 80},
		{Oyster: domain.Oyster{ID: 3}, Score: 70},
	}

	combiner := NewHybridCombiner()
	results := combiner.Combine(attribute, nil, 2)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Oyster.ID != 1 || results[1].Oyster.ID != 2 {
		t.Errorf("wrong order after truncation: %d, %d", results[0].Oyster.ID, results[1].Oyster.ID)
	}
}
