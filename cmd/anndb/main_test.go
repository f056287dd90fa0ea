package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVectors(t *testing.T, dir string, n, dim int) string {
	var b strings.Builder
	b.WriteString("# label,vector\n")
	for i, v := range math.RandomVectors(1, n, dim) {
		fields := make([]string, len(v))
		for j, x := range v {
			fields[j] = fmt.Sprintf("%g", x)
		}
		fmt.Fprintf(&b, "%d,%s\n", i, strings.Join(fields, ","))
	}

	path := filepath.Join(dir, "vectors.csv")
	require.Nil(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func run(args ...string) error {
	return newApp().Run(append([]string{"anndb", "--log-level", "warn"}, args...))
}

func TestBuildSearchInfo(t *testing.T) {
	dir := t.TempDir()
	input := writeVectors(t, dir, 200, 8)
	output := filepath.Join(dir, "vectors.hnsw")

	require.Nil(t, run("build", "-i", input, "-o", output, "--m", "8", "--ef", "40", "--m-max", "6", "--m-max0", "12", "--level-multiplier", "0.5"))

	idx, header, err := index.LoadFile(output)
	require.Nil(t, err)
	assert.Equal(t, "hnsw", header.Kind)
	assert.Equal(t, uint(8), header.Dim)
	assert.Equal(t, 200, idx.Len())
	assert.Equal(t, 40, idx.(*index.Hnsw).Ef())
	assert.Contains(t, idx.(*index.Hnsw).String(), "mMax: 6, mMax0: 12, levelMultiplier: 0.5000")

	require.Nil(t, run("search", "-f", output, "-q", "0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8", "-k", "5"))
	require.Nil(t, run("search", "-f", output, "-q", "0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8", "-k", "5", "--labels", "1,2,3"))
	assert.NotNil(t, run("search", "-f", output, "-q", "0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8", "-k", "5", "--labels", "1,2,3", "--strict"))
	assert.NotNil(t, run("search", "-f", output, "-q", "0.1,0.2", "-k", "5"))
	assert.NotNil(t, run("search", "-f", output, "-q", "a,b", "-k", "5"))
	require.Nil(t, run("info", "-f", output))
}

func TestBuildCosineBruteforce(t *testing.T) {
	dir := t.TempDir()
	input := writeVectors(t, dir, 50, 4)
	output := filepath.Join(dir, "vectors.bf")

	require.Nil(t, run("build", "-i", input, "-o", output, "--index", "bruteforce", "--metric", "cosine"))

	idx, header, err := index.LoadFile(output)
	require.Nil(t, err)
	assert.Equal(t, "bruteforce", header.Kind)
	vector, err := idx.GetVector(0)
	require.Nil(t, err)
	assert.InDelta(t, 1, math.Length(vector), 1e-5)

	require.Nil(t, run("search", "-f", output, "-q", "1,2,3,4", "-k", "3", "--metric", "cosine"))
	assert.NotNil(t, run("build", "-i", input, "-o", output, "--metric", "hamming"))
}

func TestSnapshotCommands(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	input := writeVectors(t, dir, 30, 4)
	output := filepath.Join(dir, "vectors.hnsw")
	restored := filepath.Join(dir, "restored.hnsw")

	require.Nil(t, run("build", "-i", input, "-o", output))
	require.Nil(t, run("snapshot", "put", "--store", store, "-f", output, "items"))
	require.Nil(t, run("snapshot", "list", "--store", store))
	require.Nil(t, run("snapshot", "get", "--store", store, "-o", restored, "items"))

	idx, _, err := index.LoadFile(restored)
	require.Nil(t, err)
	assert.Equal(t, 30, idx.Len())

	require.Nil(t, run("snapshot", "delete", "--store", store, "items"))
	assert.NotNil(t, run("snapshot", "get", "--store", store, "items"))
	assert.NotNil(t, run("snapshot", "delete", "--store", store))
}

func TestBench(t *testing.T) {
	require.Nil(t, run("bench", "--n", "300", "--queries", "20", "--dim", "8", "--ef", "50"))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.Nil(t, os.WriteFile(config, []byte("index: bruteforce\nlog_level: warn\n"), 0644))
	input := writeVectors(t, dir, 10, 4)
	output := filepath.Join(dir, "vectors.idx")

	require.Nil(t, newApp().Run([]string{"anndb", "--config", config, "build", "-i", input, "-o", output}))
	_, header, err := index.LoadFile(output)
	require.Nil(t, err)
	assert.Equal(t, "bruteforce", header.Kind)
}
