package recommendation

import (
	"math"

	"myOysterGuide/domain"
)

// TasteVector is the computed form of an attribute vector. Derived
// profiles are weighted averages, so components are fractional.
type TasteVector [domain.AttributeDims]float64

// maxAttributeDistance is the diagonal of the 1-10 attribute cube,
// the largest possible Euclidean distance between two vectors.
var maxAttributeDistance = 9 * math.Sqrt(float64(domain.AttributeDims))

func VectorFromAttributes(a domain.AttributeVector) TasteVector {
	return TasteVector(a.Values())
}

func (v TasteVector) DistanceTo(o TasteVector) float64 {
	sum := 0.0
	for i := range v {
		d := v[i] - o[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// cosineOverlap computes cosine similarity between two rating rows
// restricted to their shared oyster set. It returns the similarity and
// the number of shared oysters; zero overlap yields (0, 0).
func cosineOverlap(a, b map[uint64]float64) (float64, int) {
	var dot, normA, normB float64
	common := 0

	for oysterID, ra := range a {
		rb, ok := b[oysterID]
		if !ok {
			continue
		}
		common++
		dot += ra * rb
		normA += ra * ra
		normB += rb * rb
	}

	if common == 0 || normA == 0 || normB == 0 {
		return 0, 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), common
}
