package domain

import (
	"time"
)

// CREATE TABLE public.oysters (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name                TEXT NOT NULL,
//     origin              TEXT,
//     species             TEXT,
//     attr_size           SMALLINT,
//     attr_body           SMALLINT,
//     attr_sweetness      SMALLINT,
//     attr_flavorfulness  SMALLINT,
//     attr_creaminess     SMALLINT,
//     rating_avg          NUMERIC DEFAULT 0,
//     rating_count        BIGINT DEFAULT 0,
//     created_at          TIMESTAMPTZ DEFAULT NOW()
// );

type Oyster struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"column:name;type:text;not null" json:"name"`
	Origin     string          `gorm:"column:origin;type:text" json:"origin"`
	Species    string          `gorm:"column:species;type:text" json:"species"`
	Attributes AttributeVector `gorm:"embedded" json:"attributes"`

	// Aggregate community stats, maintained by the review service.
	RatingAvg   float64 `gorm:"column:rating_avg;type:numeric;default:0" json:"rating_avg"`
	RatingCount int64   `gorm:"column:rating_count;default:0" json:"rating_count"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Oyster) TableName() string {
	return "oysters"
}
