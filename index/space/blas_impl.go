package space

import (
	"sync"

	"github.com/marekgalovic/annindex/math"

	"gonum.org/v1/gonum/blas/gonum"
)

const blasMinDim uint = 16

var blasEngine = gonum.Implementation{}

var diffPool = sync.Pool{
	New: func() interface{} {
		return make([]float32, 0, 128)
	},
}

type blasSpaceImpl struct{}

func (blasSpaceImpl) SquaredEuclideanDistance(a, b math.Vector) float32 {
	n := len(a)
	diff := diffPool.Get().([]float32)
	if cap(diff) < n {
		diff = make([]float32, n)
	}
	diff = diff[:n]
	copy(diff, a)

	// diff = a - b
	blasEngine.Saxpy(n, -1, b, 1, diff, 1)
	distance := blasEngine.Sdot(n, diff, 1, diff, 1)

	diffPool.Put(diff[:0])
	return distance
}

func (blasSpaceImpl) Dot(a, b math.Vector) float32 {
	return blasEngine.Sdot(len(a), a, 1, b, 1)
}
