package index

import (
	"context"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"

	"github.com/pkg/errors"
)

// Normalized turns an inner product index into a cosine one by scaling
// every inserted and queried vector to unit length.
type Normalized struct {
	Index
}

func NewNormalized(idx Index) (*Normalized, error) {
	if idx.Space().Kind() != space.InnerProduct {
		return nil, errors.Wrapf(ErrInvalidArgument, "Cosine requires an inner product space, got %s", idx.Space().Kind())
	}
	return &Normalized{Index: idx}, nil
}

func (this *Normalized) AddPoint(vector math.Vector, label uint64) error {
	return this.Index.AddPoint(math.Normalize(vector), label)
}

func (this *Normalized) SearchKnn(ctx context.Context, query math.Vector, k uint, filter Filter) (SearchResult, error) {
	return this.Index.SearchKnn(ctx, math.Normalize(query), k, filter)
}
