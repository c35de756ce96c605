package domain

// AttributeVector holds the five taste dimensions used across the app,
// each on a 1-10 scale. Zero values mean "not set" (reviews may omit
// perceived attributes).
type AttributeVector struct {
	Size          int `gorm:"column:attr_size" json:"size"`
	Body          int `gorm:"column:attr_body" json:"body"`
	Sweetness     int `gorm:"column:attr_sweetness" json:"sweetness"`
	Flavorfulness int `gorm:"column:attr_flavorfulness" json:"flavorfulness"`
	Creaminess    int `gorm:"column:attr_creaminess" json:"creaminess"`
}

// AttributeDims is the fixed dimensionality of taste vectors.
const AttributeDims = 5

// AttributeNames indexes dimension names in vector order.
var AttributeNames = [AttributeDims]string{"size", "body", "sweetness", "flavorfulness", "creaminess"}

func (a AttributeVector) IsZero() bool {
	return a.Size == 0 && a.Body == 0 && a.Sweetness == 0 && a.Flavorfulness == 0 && a.Creaminess == 0
}

// Values returns the vector as float components in AttributeNames order.
func (a AttributeVector) Values() [AttributeDims]float64 {
	return [AttributeDims]float64{
		float64(a.Size),
		float64(a.Body),
		float64(a.Sweetness),
		float64(a.Flavorfulness),
		float64(a.Creaminess),
	}
}
