package commands

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/marekgalovic/annindex"
	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// loadConfig reads --config if given and applies flags explicitly set on the
// command line on top of it.
func loadConfig(c *cli.Context) (*annindex.Config, error) {
	config := annindex.NewConfig()
	if path := c.String("config"); path != "" {
		var err error
		if config, err = annindex.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}
	if c.IsSet("index") {
		config.Index = c.String("index")
	}
	if c.IsSet("metric") {
		config.Metric = c.String("metric")
	}
	if c.IsSet("dim") {
		config.Dim = c.Uint("dim")
	}
	if c.IsSet("capacity") {
		config.MaxElements = c.Uint("capacity")
	}
	if c.IsSet("m") {
		config.M = c.Int("m")
	}
	if c.IsSet("m-max") {
		config.MMax = c.Int("m-max")
	}
	if c.IsSet("m-max0") {
		config.MMax0 = c.Int("m-max0")
	}
	if c.IsSet("level-multiplier") {
		config.LevelMultiplier = c.Float64("level-multiplier")
	}
	if c.IsSet("ef-construction") {
		config.EfConstruction = c.Int("ef-construction")
	}
	if c.IsSet("ef") {
		config.Ef = c.Int("ef")
	}
	if c.IsSet("seed") {
		config.RandomSeed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}
	if c.IsSet("store") {
		config.StoreDir = c.String("store")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := config.ApplyLogLevel(); err != nil {
		return nil, err
	}
	log.Debugf("Config: %s", config)
	return config, nil
}

func parseVector(raw string) (math.Vector, error) {
	fields := strings.Split(raw, ",")
	vector := make(math.Vector, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid vector component %q", field)
		}
		vector = append(vector, float32(value))
	}
	return vector, nil
}

func parseLabels(raw string) ([]uint64, error) {
	fields := strings.Split(raw, ",")
	labels := make([]uint64, 0, len(fields))
	for _, field := range fields {
		label, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid label %q", field)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// readVectors parses rows of "label,v1,...,vd". All rows must have the same
// dimension.
func readVectors(r io.Reader) ([]math.Vector, []uint64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var vectors []math.Vector
	var labels []uint64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, errors.Wrap(err, "Failed to read vectors")
		}
		if len(row) < 2 {
			line, _ := reader.FieldPos(0)
			return nil, nil, errors.Errorf("Row %d has no vector components", line)
		}

		label, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Invalid label %q", row[0])
		}
		vector, err := parseVector(strings.Join(row[1:], ","))
		if err != nil {
			return nil, nil, err
		}

		labels = append(labels, label)
		vectors = append(vectors, vector)
	}
	return vectors, labels, nil
}

func readVectorsFile(path string) ([]math.Vector, []uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return readVectors(f)
}

// openIndex loads an index file, wrapping it for cosine when config asks for
// it. A positive ef overrides the persisted one.
func openIndex(path string, config *annindex.Config, ef int) (index.Index, *index.Header, error) {
	idx, header, err := index.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if hnsw, ok := idx.(*index.Hnsw); ok && ef > 0 {
		hnsw.SetEf(ef)
	}

	idx, err = config.Wrap(idx)
	if err != nil {
		return nil, nil, err
	}
	return idx, header, nil
}

func saveIndex(path string, idx index.Index) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := idx.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
