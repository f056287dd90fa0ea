package math

import (
	goMath "math"
	"math/rand"
	"sync"
)

// LevelGenerator draws HNSW node levels from an exponential distribution
// capped at max. A fixed seed makes graph construction reproducible.
type LevelGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
	mult float64
	max  int
}

func NewLevelGenerator(seed int64, mult float64, max int) *LevelGenerator {
	return &LevelGenerator{
		rand: rand.New(rand.NewSource(seed)),
		mult: mult,
		max:  max,
	}
}

func (this *LevelGenerator) Next() int {
	this.mu.Lock()
	u := this.rand.Float64()
	this.mu.Unlock()

	level := goMath.Floor(-goMath.Log(1-u) * this.mult)
	if level > float64(this.max) {
		return this.max
	}
	return int(level)
}

func RandomUniform() float32 {
	return rand.Float32()
}

func RandomUniformVector(size int) Vector {
	vec := make(Vector, size)
	for i := 0; i < size; i++ {
		vec[i] = RandomUniform()
	}
	return vec
}

// RandomVectors generates n uniform vectors from a dedicated source.
func RandomVectors(seed int64, n, size int) []Vector {
	r := rand.New(rand.NewSource(seed))
	vectors := make([]Vector, n)
	for i := range vectors {
		vectors[i] = make(Vector, size)
		for j := 0; j < size; j++ {
			vectors[i][j] = r.Float32()
		}
	}
	return vectors
}
