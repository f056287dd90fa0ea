package space

import (
	"github.com/marekgalovic/annindex/math"
)

type nativeSpaceImpl struct{}

func (nativeSpaceImpl) SquaredEuclideanDistance(a, b math.Vector) float32 {
	var distance float32
	for i := 0; i < len(a); i++ {
		d := a[i] - b[i]
		distance += d * d
	}

	return distance
}

func (nativeSpaceImpl) Dot(a, b math.Vector) float32 {
	return math.Dot(a, b)
}
