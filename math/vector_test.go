package math

import (
	"bytes"
	goMath "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorSaveAndLoad(t *testing.T) {
	vec := make(Vector, 32)
	for i := 0; i < 32; i++ {
		vec[i] = float32(i*2) + float32(i)/2.0
	}

	var buf bytes.Buffer
	err := vec.Save(&buf)
	assert.Nil(t, err)
	assert.Equal(t, 32*VECTOR_COMPONENT_BYTES_SIZE, buf.Len())

	otherVec := make(Vector, 32)
	err = otherVec.Load(&buf)
	assert.Nil(t, err)

	assert.Equal(t, vec, otherVec)
}

func TestVectorCopy(t *testing.T) {
	vec := Vector{1, 2, 3}
	c := vec.Copy()
	c[0] = 10

	assert.Equal(t, float32(1), vec[0])
}

func TestDot(t *testing.T) {
	vecA := Vector{1, 2, 3}
	vecB := Vector{4, 5, 6}

	assert.Equal(t, float32(32), Dot(vecA, vecB))
}

func TestLength(t *testing.T) {
	vec := Vector{1, 1, 1, 1}

	assert.Equal(t, float32(2), Length(vec))
}

func TestNormalize(t *testing.T) {
	vec := Vector{3, 4}
	n := Normalize(vec)

	assert.InDelta(t, 0.6, n[0], 1e-6)
	assert.InDelta(t, 0.8, n[1], 1e-6)
	assert.InDelta(t, 1, Length(n), 1e-6)
	assert.Equal(t, Vector{3, 4}, vec)

	assert.Equal(t, Vector{0, 0}, Normalize(Vector{0, 0}))
}

func TestLevelGeneratorIsDeterministic(t *testing.T) {
	a := NewLevelGenerator(100, 1/2.77, 255)
	b := NewLevelGenerator(100, 1/2.77, 255)

	for i := 0; i < 1000; i++ {
		la, lb := a.Next(), b.Next()
		assert.Equal(t, la, lb)
		assert.GreaterOrEqual(t, la, 0)
	}
}

func TestLevelGeneratorDistribution(t *testing.T) {
	g := NewLevelGenerator(42, 1/goMath.Log(16), 255)

	zeros := 0
	n := 10000
	for i := 0; i < n; i++ {
		if g.Next() == 0 {
			zeros++
		}
	}
	// P(level = 0) = 1 - 1/M
	assert.InDelta(t, 15.0/16.0, float64(zeros)/float64(n), 0.02)
}

func TestLevelGeneratorMax(t *testing.T) {
	g := NewLevelGenerator(7, 1e300, 3)
	for i := 0; i < 100; i++ {
		level := g.Next()
		assert.GreaterOrEqual(t, level, 0)
		assert.LessOrEqual(t, level, 3)
	}
}

func TestMinMaxInt(t *testing.T) {
	assert.Equal(t, 1, MinInt(3, 1, 2))
	assert.Equal(t, 3, MaxInt(3, 1, 2))
}
