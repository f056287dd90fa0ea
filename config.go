package annindex

import (
	"fmt"
	"os"

	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/index/space"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	IndexHnsw       = "hnsw"
	IndexBruteforce = "bruteforce"
	MetricCosine    = "cosine"
)

type Config struct {
	LogLevel            string  `yaml:"log_level"`
	Index               string  `yaml:"index"`
	Metric              string  `yaml:"metric"`
	Dim                 uint    `yaml:"dim"`
	MaxElements         uint    `yaml:"max_elements"`
	M                   int     `yaml:"m"`
	MMax                int     `yaml:"m_max"`
	MMax0               int     `yaml:"m_max0"`
	LevelMultiplier     float64 `yaml:"level_multiplier"`
	EfConstruction      int     `yaml:"ef_construction"`
	Ef                  int     `yaml:"ef"`
	RandomSeed          int64   `yaml:"random_seed"`
	AllowReplaceDeleted bool    `yaml:"allow_replace_deleted"`
	Workers             int     `yaml:"workers"`
	StoreDir            string  `yaml:"store_dir"`
}

func NewConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Index:          IndexHnsw,
		Metric:         "l2",
		M:              16,
		EfConstruction: 200,
		Ef:             10,
		RandomSeed:     100,
		StoreDir:       "/tmp/annindex",
	}
}

// LoadConfig reads YAML from path over the defaults of NewConfig.
func LoadConfig(path string) (*Config, error) {
	config := NewConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read config")
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "Invalid config %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (this *Config) Validate() error {
	if _, err := log.ParseLevel(this.LogLevel); err != nil {
		return errors.Wrap(index.ErrInvalidArgument, err.Error())
	}
	if this.Index != IndexHnsw && this.Index != IndexBruteforce {
		return errors.Wrapf(index.ErrInvalidArgument, "Unknown index %q", this.Index)
	}
	if _, _, err := this.spaceKind(); err != nil {
		return err
	}
	return nil
}

func (this *Config) String() string {
	return fmt.Sprintf("index: %s, metric: %s, dim: %d, maxElements: %d, m: %d, efConstruction: %d, ef: %d", this.Index, this.Metric, this.Dim, this.MaxElements, this.M, this.EfConstruction, this.Ef)
}

// ApplyLogLevel sets the level of the standard logrus logger.
func (this *Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(this.LogLevel)
	if err != nil {
		return errors.Wrap(index.ErrInvalidArgument, err.Error())
	}
	log.SetLevel(level)
	return nil
}

// Cosine reports whether vectors are normalized over an inner product space.
func (this *Config) Cosine() bool {
	return this.Metric == MetricCosine
}

func (this *Config) spaceKind() (space.Kind, bool, error) {
	if this.Cosine() {
		return space.InnerProduct, true, nil
	}
	kind, err := space.ParseKind(this.Metric)
	if err != nil {
		return 0, false, errors.Wrap(index.ErrInvalidArgument, err.Error())
	}
	return kind, false, nil
}

func (this *Config) Space() (space.Space, error) {
	kind, _, err := this.spaceKind()
	if err != nil {
		return nil, err
	}
	return space.New(kind, this.Dim)
}

// HnswOptions maps the config to index options. Zero degree bounds and level
// multiplier fall back to values derived from M.
func (this *Config) HnswOptions() []index.HnswOption {
	return []index.HnswOption{
		index.HnswM(this.M),
		index.HnswMmax(this.MMax),
		index.HnswMmax0(this.MMax0),
		index.HnswLevelMultiplier(this.LevelMultiplier),
		index.HnswEfConstruction(this.EfConstruction),
		index.HnswEf(this.Ef),
		index.HnswRandomSeed(this.RandomSeed),
		index.HnswAllowReplaceDeleted(this.AllowReplaceDeleted),
	}
}

// NewIndex creates an empty index described by the config.
func (this *Config) NewIndex() (index.Index, error) {
	if this.Dim == 0 {
		return nil, errors.Wrap(index.ErrInvalidArgument, "Dimension must be positive")
	}
	s, err := this.Space()
	if err != nil {
		return nil, err
	}

	var idx index.Index
	switch this.Index {
	case IndexHnsw:
		idx, err = index.NewHnsw(s, this.MaxElements, this.HnswOptions()...)
	case IndexBruteforce:
		idx, err = index.NewBruteforce(s, this.MaxElements)
	default:
		err = errors.Wrapf(index.ErrInvalidArgument, "Unknown index %q", this.Index)
	}
	if err != nil {
		return nil, err
	}

	return this.Wrap(idx)
}

// Wrap adds cosine normalization to idx when the metric asks for it.
func (this *Config) Wrap(idx index.Index) (index.Index, error) {
	if !this.Cosine() {
		return idx, nil
	}
	return index.NewNormalized(idx)
}
