package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/math"
	"github.com/marekgalovic/annindex/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func Build(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	vectors, labels, err := readVectorsFile(c.String("input"))
	if err != nil {
		return err
	}
	if len(vectors) == 0 {
		return errors.New("No vectors to index")
	}

	if config.Dim == 0 {
		config.Dim = uint(len(vectors[0]))
	}
	config.MaxElements = uint(math.MaxInt(int(config.MaxElements), len(vectors)))

	idx, err := config.NewIndex()
	if err != nil {
		return err
	}
	log.Infof("Building %s", config)

	ctx, cancel := utils.InterruptContext(context.Background())
	defer cancel()

	startAt := time.Now()
	if err := index.AddPoints(ctx, idx, vectors, labels, config.Workers); err != nil {
		return err
	}
	elapsed := time.Since(startAt)

	if err := saveIndex(c.String("output"), idx); err != nil {
		return err
	}

	fmt.Printf("Indexed %d vectors in %s (%.2f inserts/s), saved to %s\n", idx.Len(), elapsed, float64(len(vectors))/elapsed.Seconds(), c.String("output"))
	return nil
}
