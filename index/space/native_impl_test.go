package space

import (
	"testing"

	"github.com/marekgalovic/annindex/math"

	"github.com/stretchr/testify/assert"
)

func TestNativeSquaredEuclideanDistance(t *testing.T) {
	var impl nativeSpaceImpl
	distance := impl.SquaredEuclideanDistance(
		math.Vector{1, 2, 3},
		math.Vector{1, 2, 3},
	)
	assert.Equal(t, float32(0), distance)

	distance = impl.SquaredEuclideanDistance(
		math.Vector{1, 2, 2},
		math.Vector{0, 0, 0},
	)
	assert.Equal(t, float32(9), distance)
}

func TestNativeDot(t *testing.T) {
	var impl nativeSpaceImpl
	assert.Equal(t, float32(32), impl.Dot(math.Vector{1, 2, 3}, math.Vector{4, 5, 6}))
}

func TestBlasMatchesNative(t *testing.T) {
	var native nativeSpaceImpl
	var blas blasSpaceImpl

	for _, dim := range []int{1, 3, 16, 33, 128, 300} {
		a, b := math.RandomUniformVector(dim), math.RandomUniformVector(dim)
		assert.InDelta(t, native.SquaredEuclideanDistance(a, b), blas.SquaredEuclideanDistance(a, b), 1e-3)
		assert.InDelta(t, native.Dot(a, b), blas.Dot(a, b), 1e-3)
	}
}
