package commands

import (
	"strings"
	"testing"

	"github.com/marekgalovic/annindex/math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVectors(t *testing.T) {
	vectors, labels, err := readVectors(strings.NewReader("# comment\n1, 0.5, 1.5\n7,2,3\n"))
	require.Nil(t, err)
	assert.Equal(t, []uint64{1, 7}, labels)
	assert.Equal(t, []math.Vector{{0.5, 1.5}, {2, 3}}, vectors)

	_, _, err = readVectors(strings.NewReader("1,2,3\n2,3\n"))
	assert.NotNil(t, err)

	_, _, err = readVectors(strings.NewReader("x,2,3\n"))
	assert.NotNil(t, err)

	_, _, err = readVectors(strings.NewReader("1\n"))
	assert.NotNil(t, err)
}

func TestParseVectorAndLabels(t *testing.T) {
	vector, err := parseVector("1, 2.5,-3")
	require.Nil(t, err)
	assert.Equal(t, math.Vector{1, 2.5, -3}, vector)

	_, err = parseVector("1,,2")
	assert.NotNil(t, err)

	labels, err := parseLabels("4, 5,6")
	require.Nil(t, err)
	assert.Equal(t, []uint64{4, 5, 6}, labels)

	_, err = parseLabels("-1")
	assert.NotNil(t, err)
}
