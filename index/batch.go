package index

import (
	"context"
	"runtime"

	"github.com/marekgalovic/annindex/math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// AddPoints inserts vectors[i] under labels[i] using up to workers goroutines.
// workers <= 0 uses GOMAXPROCS. The first error stops scheduling further
// inserts and is returned.
func AddPoints(ctx context.Context, idx Index, vectors []math.Vector, labels []uint64, workers int) error {
	if len(vectors) != len(labels) {
		return errors.Wrapf(ErrInvalidArgument, "Got %d vectors and %d labels", len(vectors), len(labels))
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range vectors {
		if ctx.Err() != nil {
			break
		}
		vector, label := vectors[i], labels[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return errors.Wrapf(idx.AddPoint(vector, label), "label %d", label)
		})
	}
	return g.Wait()
}
