package math

import (
	"encoding/binary"
	"io"
)

const VECTOR_COMPONENT_BYTES_SIZE = 4

type Vector []float32

func (v Vector) Save(w io.Writer) error {
	return binary.Write(w, binary.BigEndian, []float32(v))
}

func (v Vector) Load(r io.Reader) error {
	return binary.Read(r, binary.BigEndian, []float32(v))
}

func (v Vector) Copy() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func Dot(a, b Vector) float32 {
	var dot float32
	for i := 0; i < len(a); i++ {
		dot += a[i] * b[i]
	}
	return dot
}

func Length(a Vector) float32 {
	return Sqrt(Dot(a, a))
}

// Normalize returns a unit length copy of a. Zero vectors are returned unchanged.
func Normalize(a Vector) Vector {
	result := a.Copy()
	length := Length(a)
	if length == 0 {
		return result
	}
	for i := range result {
		result[i] /= length
	}
	return result
}
