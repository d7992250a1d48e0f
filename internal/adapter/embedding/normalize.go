package embedding

import (
	"math"
	"strings"
)

// NormalizeText lowercases and collapses all whitespace runs to single
// spaces so the same content always produces the same vector.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// l2Normalize scales a vector to unit length in place and returns it.
// Zero vectors are returned unchanged so the dot product with anything
// stays zero.
func l2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
	return vec
}
