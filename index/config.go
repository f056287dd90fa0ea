package index

import (
	"encoding/binary"
	"fmt"
	"io"
	goMath "math"
	"runtime"

	"github.com/pkg/errors"
)

// Options
type HnswOption interface {
	apply(*hnswConfig)
}

type hnswOption struct {
	applyFunc func(*hnswConfig)
}

func (opt *hnswOption) apply(config *hnswConfig) {
	opt.applyFunc(config)
}

func HnswLevelMultiplier(value float64) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.levelMultiplier = value
	}}
}

// HnswEf sets the query time beam width.
func HnswEf(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.ef = value
	}}
}

func HnswEfConstruction(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.efConstruction = value
	}}
}

func HnswM(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.m = value
	}}
}

func HnswMmax(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.mMax = value
	}}
}

func HnswMmax0(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.mMax0 = value
	}}
}

func HnswRandomSeed(value int64) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.seed = value
	}}
}

func HnswAllowReplaceDeleted(value bool) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.allowReplaceDeleted = value
	}}
}

// HnswVisitedPoolSize bounds the number of concurrent traversals.
func HnswVisitedPoolSize(value int) HnswOption {
	return &hnswOption{func(config *hnswConfig) {
		config.visitedPoolSize = value
	}}
}

type hnswConfig struct {
	levelMultiplier     float64
	ef                  int
	efConstruction      int
	m                   int
	mMax                int
	mMax0               int
	seed                int64
	allowReplaceDeleted bool
	visitedPoolSize     int
}

func newHnswConfig(options []HnswOption) *hnswConfig {
	config := &hnswConfig{
		levelMultiplier:     -1,
		ef:                  10,
		efConstruction:      200,
		m:                   16,
		mMax:                -1,
		mMax0:               -1,
		seed:                100,
		allowReplaceDeleted: false,
		visitedPoolSize:     2 * runtime.GOMAXPROCS(0),
	}
	for _, option := range options {
		option.apply(config)
	}
	config.fillDefaults()

	return config
}

func (this *hnswConfig) fillDefaults() {
	if this.levelMultiplier <= 0 && this.m > 1 {
		this.levelMultiplier = 1.0 / goMath.Log(float64(this.m))
	}
	if this.mMax <= 0 {
		this.mMax = this.m
	}
	if this.mMax0 <= 0 {
		this.mMax0 = 2 * this.m
	}
	if this.efConstruction < this.m {
		this.efConstruction = this.m
	}
}

func (this *hnswConfig) validate() error {
	if this.m < 2 {
		return errors.Wrapf(ErrInvalidArgument, "M must be at least 2, got %d", this.m)
	}
	if this.ef < 1 {
		return errors.Wrapf(ErrInvalidArgument, "ef must be positive, got %d", this.ef)
	}
	if this.mMax < 1 || this.mMax0 < 1 {
		return errors.Wrapf(ErrInvalidArgument, "Degree bounds must be positive, got mMax: %d, mMax0: %d", this.mMax, this.mMax0)
	}
	if this.levelMultiplier <= 0 || goMath.IsInf(this.levelMultiplier, 0) || goMath.IsNaN(this.levelMultiplier) {
		return errors.Wrapf(ErrInvalidArgument, "Invalid level multiplier %f", this.levelMultiplier)
	}
	return nil
}

func (this *hnswConfig) String() string {
	return fmt.Sprintf(
		"ef: %d, efConstruction: %d, m: %d, mMax: %d, mMax0: %d, levelMultiplier: %.4f, seed: %d, allowReplaceDeleted: %t",
		this.ef,
		this.efConstruction,
		this.m,
		this.mMax,
		this.mMax0,
		this.levelMultiplier,
		this.seed,
		this.allowReplaceDeleted,
	)
}

func (this *hnswConfig) save(w io.Writer) error {
	values := []interface{}{
		int32(this.m),
		int32(this.mMax),
		int32(this.mMax0),
		int32(this.efConstruction),
		int32(this.ef),
		this.levelMultiplier,
		this.seed,
	}
	for _, value := range values {
		if err := binary.Write(w, binary.BigEndian, value); err != nil {
			return err
		}
	}
	return nil
}

func (this *hnswConfig) load(r io.Reader) error {
	var int32Val int32

	for _, field := range []*int{&this.m, &this.mMax, &this.mMax0, &this.efConstruction, &this.ef} {
		if err := binary.Read(r, binary.BigEndian, &int32Val); err != nil {
			return err
		}
		*field = int(int32Val)
	}

	if err := binary.Read(r, binary.BigEndian, &this.levelMultiplier); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &this.seed); err != nil {
		return err
	}

	return nil
}
