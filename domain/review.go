package domain

import (
	"time"
)

// Rating is the closed four-level review scale.
type Rating string

const (
	RatingStronglyPositive Rating = "strongly_positive"
	RatingPositive         Rating = "positive"
	RatingNeutral          Rating = "neutral"
	RatingNegative         Rating = "negative"
)

// ratingValues is the total numeric mapping used for all vector math.
var ratingValues = map[Rating]float64{
	RatingStronglyPositive: 4,
	RatingPositive:         3,
	RatingNeutral:          2,
	RatingNegative:         1,
}

// Value returns the numeric rating, or 0 for an unknown value so bad
// rows never poison a computation.
func (r Rating) Value() float64 {
	return ratingValues[r]
}

func (r Rating) Valid() bool {
	_, ok := ratingValues[r]
	return ok
}

// IsPositive reports whether the rating counts as profile signal.
func (r Rating) IsPositive() bool {
	return r == RatingStronglyPositive || r == RatingPositive
}

// Review is one user's verdict on one oyster. The store enforces
// uniqueness per (user, oyster) pair.
type Review struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"column:user_id;not null;uniqueIndex:idx_reviews_user_oyster" json:"user_id"`
	OysterID uint64 `gorm:"column:oyster_id;not null;uniqueIndex:idx_reviews_user_oyster" json:"oyster_id"`
	Rating   Rating `gorm:"column:rating;type:text;not null" json:"rating"`
	Comment  string `gorm:"column:comment;type:text" json:"comment,omitempty"`

	// Perceived attributes are optional; all-zero means the reviewer
	// skipped them.
	Attributes AttributeVector `gorm:"embedded" json:"attributes"`

	// WeightedScore is this review's contribution weight. It is computed
	// outside the engine and consumed as an opaque value.
	WeightedScore float64 `gorm:"column:weighted_score;type:numeric;default:1" json:"weighted_score"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) HasAttributes() bool {
	return !r.Attributes.IsZero()
}
