package domain

import (
	"time"

	"gorm.io/datatypes"
)

// RecommendedOyster is one ranked entry of a recommendation response.
// Scores live on a 0-100 scale regardless of mode; Neighbors is only set
// for collaborative and hybrid results.
type RecommendedOyster struct {
	Oyster      Oyster  `json:"oyster"`
	Score       float64 `json:"score"`
	MatchReason string  `json:"match_reason,omitempty"`
	Neighbors   int     `json:"neighbors,omitempty"`
}

// SimilarUser carries the minimal identity exposed by the
// similar-users query.
type SimilarUser struct {
	ID         uint    `json:"id"`
	FullName   string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// RecommendationEvent logs one served recommendation request for
// offline analysis. Context holds request metadata (mode, limit,
// result count, trace id).
type RecommendationEvent struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	Mode      string            `gorm:"column:mode;type:text;not null" json:"mode"`
	Served    int               `gorm:"column:served" json:"served"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (RecommendationEvent) TableName() string {
	return "recommendation_events"
}
