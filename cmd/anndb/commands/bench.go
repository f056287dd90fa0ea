package commands

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/marekgalovic/annindex"
	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/math"
	"github.com/marekgalovic/annindex/utils"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/process"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

type benchResult struct {
	buildTime    time.Duration
	searchTime   time.Duration
	queries      uint64
	recall       float64
	insufficient uint64
}

// Bench builds an HNSW and an exact index over random vectors and reports
// recall of the former against the latter.
func Bench(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	n := c.Int("n")
	numQueries := c.Int("queries")
	k := c.Uint("k")
	if config.Dim == 0 {
		config.Dim = 32
	}
	config.Index = annindex.IndexHnsw
	config.MaxElements = uint(n)

	approx, err := config.NewIndex()
	if err != nil {
		return err
	}
	exact, err := index.NewBruteforce(approx.Space(), uint(n))
	if err != nil {
		return err
	}

	vectors := math.RandomVectors(config.RandomSeed, n, int(config.Dim))
	labels := make([]uint64, n)
	for i := range labels {
		labels[i] = uint64(i)
	}
	queries := math.RandomVectors(config.RandomSeed+1, numQueries, int(config.Dim))

	ctx, cancel := utils.InterruptContext(context.Background())
	defer cancel()

	var result benchResult
	startAt := time.Now()
	if err := index.AddPoints(ctx, approx, vectors, labels, config.Workers); err != nil {
		return err
	}
	result.buildTime = time.Since(startAt)
	if err := index.AddPoints(ctx, exact, vectors, labels, config.Workers); err != nil {
		return err
	}
	log.Infof("Indexed %d vectors in %s", n, result.buildTime)

	expected := make([]index.SearchResult, len(queries))
	for i, query := range queries {
		if expected[i], err = exact.SearchKnn(ctx, query, k, nil); err != nil {
			return err
		}
	}

	var hits uint64
	g, gctx := errgroup.WithContext(ctx)
	if config.Workers > 0 {
		g.SetLimit(config.Workers)
	}
	startAt = time.Now()
	for i := range queries {
		i := i
		g.Go(func() error {
			found, err := approx.SearchKnn(gctx, queries[i], k, nil)
			if err != nil {
				return err
			}
			if found.Insufficient(k) {
				atomic.AddUint64(&result.insufficient, 1)
			}
			atomic.AddUint64(&result.queries, 1)

			truth := make(map[uint64]struct{}, len(expected[i]))
			for _, label := range expected[i].Labels() {
				truth[label] = struct{}{}
			}
			matched := 0
			for _, label := range found.Labels() {
				if _, ok := truth[label]; ok {
					matched++
				}
			}
			atomic.AddUint64(&hits, uint64(matched))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	result.searchTime = time.Since(startAt)
	if total := uint64(len(queries)) * uint64(k); total > 0 {
		result.recall = float64(hits) / float64(total)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"config", config.String()})
	table.Append([]string{"build time", result.buildTime.String()})
	table.Append([]string{"inserts/s", fmt.Sprintf("%.2f", float64(n)/result.buildTime.Seconds())})
	table.Append([]string{"queries/s", fmt.Sprintf("%.2f", float64(result.queries)/result.searchTime.Seconds())})
	table.Append([]string{fmt.Sprintf("recall@%d", k), fmt.Sprintf("%.4f", result.recall)})
	table.Append([]string{"insufficient results", fmt.Sprintf("%d", result.insufficient)})
	if rss, err := residentMemory(); err == nil {
		table.Append([]string{"resident memory", fmt.Sprintf("%.2f MiB", float64(rss)/(1<<20))})
	} else {
		log.Warnf("Failed to read memory usage: %v", err)
	}
	table.Render()
	return nil
}

func residentMemory() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}
