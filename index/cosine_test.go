package index

import (
	"context"
	"testing"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizedRequiresInnerProduct(t *testing.T) {
	_, err := NewNormalized(newTestBruteforce(t, space.NewL2(3), 4))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNormalizedBruteforce(t *testing.T) {
	index, err := NewNormalized(newTestBruteforce(t, space.NewInnerProduct(3), 4))
	require.Nil(t, err)
	addTestPoints(t, index)

	result, err := index.SearchKnn(context.Background(), math.Vector{1, 2, 3}, 4, nil)
	require.Nil(t, err)
	assert.Equal(t, []uint64{0, 2, 1, 3}, result.Labels())
	assert.InDeltaSlice(t, []float32{0, 0.01801949, 0.03301244, 0.19821627}, result.Distances(), 1e-5)
}

func TestNormalizedScaleInvariance(t *testing.T) {
	index, err := NewNormalized(newTestHnsw(t, space.NewInnerProduct(3), 4))
	require.Nil(t, err)
	addTestPoints(t, index)

	result, err := index.SearchKnn(context.Background(), math.Vector{10, 20, 30}, 1, nil)
	require.Nil(t, err)
	assert.Equal(t, []uint64{0}, result.Labels())
	assert.InDelta(t, 0, result[0].Distance, 1e-5)
}

func TestNormalizedRemove(t *testing.T) {
	index, err := NewNormalized(newTestHnsw(t, space.NewInnerProduct(3), 4))
	require.Nil(t, err)
	addTestPoints(t, index)

	require.Nil(t, Remove(index, 0))
	result, err := index.SearchKnn(context.Background(), math.Vector{1, 2, 3}, 1, nil)
	require.Nil(t, err)
	assert.Equal(t, []uint64{2}, result.Labels())
}
