package annindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/index/space"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
log_level: debug
index: bruteforce
metric: ip
dim: 32
max_elements: 1000
m_max: 12
level_multiplier: 0.25
`))
	require.Nil(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, IndexBruteforce, config.Index)
	assert.Equal(t, uint(32), config.Dim)
	assert.Equal(t, uint(1000), config.MaxElements)
	assert.Equal(t, 12, config.MMax)
	assert.Equal(t, 0, config.MMax0)
	assert.Equal(t, 0.25, config.LevelMultiplier)
	// Defaults are kept for missing keys.
	assert.Equal(t, 16, config.M)
	assert.Equal(t, 200, config.EfConstruction)

	s, err := config.Space()
	require.Nil(t, err)
	assert.Equal(t, space.InnerProduct, s.Kind())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)

	_, err = LoadConfig(writeConfig(t, "index: [1, 2"))
	assert.NotNil(t, err)

	_, err = LoadConfig(writeConfig(t, "index: lsh"))
	assert.ErrorIs(t, err, index.ErrInvalidArgument)

	_, err = LoadConfig(writeConfig(t, "metric: manhattan"))
	assert.ErrorIs(t, err, index.ErrInvalidArgument)

	_, err = LoadConfig(writeConfig(t, "log_level: loud"))
	assert.ErrorIs(t, err, index.ErrInvalidArgument)
}

func TestConfigNewIndex(t *testing.T) {
	config := NewConfig()
	config.Dim = 4
	config.MaxElements = 10

	idx, err := config.NewIndex()
	require.Nil(t, err)
	assert.IsType(t, &index.Hnsw{}, idx)
	assert.Equal(t, 10, idx.(*index.Hnsw).Ef())

	config.Index = IndexBruteforce
	idx, err = config.NewIndex()
	require.Nil(t, err)
	assert.IsType(t, &index.Bruteforce{}, idx)

	config.Metric = MetricCosine
	idx, err = config.NewIndex()
	require.Nil(t, err)
	assert.IsType(t, &index.Normalized{}, idx)
	assert.Equal(t, space.InnerProduct, idx.Space().Kind())

	config.Index = IndexHnsw
	config.Metric = "l2"
	config.MMax = 3
	config.MMax0 = 5
	config.LevelMultiplier = 0.5
	idx, err = config.NewIndex()
	require.Nil(t, err)
	assert.Contains(t, idx.(*index.Hnsw).String(), "mMax: 3, mMax0: 5, levelMultiplier: 0.5000")

	config.Dim = 0
	_, err = config.NewIndex()
	assert.ErrorIs(t, err, index.ErrInvalidArgument)
}
