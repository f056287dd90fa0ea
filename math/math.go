package math

import (
	goMath "math"
)

const MaxFloat = float32(goMath.MaxFloat32)
const MaxIntVal = int((^uint(0)) >> 1)

func Sqrt(x float32) float32 {
	return float32(goMath.Sqrt(float64(x)))
}

func MinInt(values ...int) int {
	min := MaxIntVal
	for _, value := range values {
		if value < min {
			min = value
		}
	}
	return min
}

func MaxInt(values ...int) int {
	max := -MaxIntVal
	for _, value := range values {
		if value > max {
			max = value
		}
	}
	return max
}
