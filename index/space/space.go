package space

import (
	"fmt"
	"strings"

	"github.com/marekgalovic/annindex/math"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
)

var (
	ErrDimensionMismatch error = errors.New("Vector dimension does not match space dimension")
	ErrInvalidKind       error = errors.New("Invalid space kind")
)

type Kind uint8

const (
	L2 Kind = iota + 1
	InnerProduct
)

func (k Kind) String() string {
	switch k {
	case L2:
		return "l2"
	case InnerProduct:
		return "ip"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "l2", "euclidean":
		return L2, nil
	case "ip", "inner_product", "dot":
		return InnerProduct, nil
	}
	return 0, errors.Wrapf(ErrInvalidKind, "%q", name)
}

type SpaceImpl interface {
	SquaredEuclideanDistance(math.Vector, math.Vector) float32
	Dot(math.Vector, math.Vector) float32
}

// Space fixes dimensionality and the distance function. Distance validates
// both inputs, UncheckedDistance is the hot path for already validated vectors.
type Space interface {
	Dim() uint
	Kind() Kind
	Distance(math.Vector, math.Vector) (float32, error)
	UncheckedDistance(math.Vector, math.Vector) float32
}

type space struct {
	dim  uint
	impl SpaceImpl
}

func newSpace(dim uint) space {
	if dim >= blasMinDim && (cpuid.CPU.Has(cpuid.AVX2) || cpuid.CPU.Has(cpuid.SSE2)) {
		return space{dim: dim, impl: blasSpaceImpl{}}
	}

	return space{dim: dim, impl: nativeSpaceImpl{}}
}

func (this space) Dim() uint {
	return this.dim
}

func (this space) check(a, b math.Vector) error {
	if uint(len(a)) != this.dim || uint(len(b)) != this.dim {
		return ErrDimensionMismatch
	}
	return nil
}

type Euclidean struct{ space }

type Dot struct{ space }

func New(kind Kind, dim uint) (Space, error) {
	switch kind {
	case L2:
		return NewL2(dim), nil
	case InnerProduct:
		return NewInnerProduct(dim), nil
	}
	return nil, ErrInvalidKind
}

// NewL2 returns a squared euclidean space.
func NewL2(dim uint) Space {
	return &Euclidean{newSpace(dim)}
}

func (this *Euclidean) Kind() Kind {
	return L2
}

func (this *Euclidean) String() string {
	return fmt.Sprintf("l2(%d)", this.dim)
}

func (this *Euclidean) Distance(a, b math.Vector) (float32, error) {
	if err := this.check(a, b); err != nil {
		return 0, err
	}
	return this.impl.SquaredEuclideanDistance(a, b), nil
}

func (this *Euclidean) UncheckedDistance(a, b math.Vector) float32 {
	return this.impl.SquaredEuclideanDistance(a, b)
}

// NewInnerProduct returns a space with distance 1 - <a, b>. The distance is
// negative for vectors whose dot product exceeds one.
func NewInnerProduct(dim uint) Space {
	return &Dot{newSpace(dim)}
}

func (this *Dot) Kind() Kind {
	return InnerProduct
}

func (this *Dot) String() string {
	return fmt.Sprintf("ip(%d)", this.dim)
}

func (this *Dot) Distance(a, b math.Vector) (float32, error) {
	if err := this.check(a, b); err != nil {
		return 0, err
	}
	return 1 - this.impl.Dot(a, b), nil
}

func (this *Dot) UncheckedDistance(a, b math.Vector) float32 {
	return 1 - this.impl.Dot(a, b)
}
