package domain

import (
	"time"
)

// TasteProfile is a user's explicitly configured baseline preference.
// When present it overrides anything derived from review history.
type TasteProfile struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint            `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Attributes AttributeVector `gorm:"embedded" json:"attributes"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (TasteProfile) TableName() string {
	return "user_taste_profiles"
}
