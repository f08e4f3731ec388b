package usage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Reduce aggregates parts in parallel.
//
// The input is split into one contiguous chunk per worker; each chunk is
// folded independently and the partial sums are merged in chunk order.
// Because aggregation is associative and commutative the result equals
// Sum(parts...). parts is only read.
//
// Reduce returns ctx.Err() if the context is canceled before all chunks are
// folded.
func Reduce(ctx context.Context, parts []*Usage, opts ...Option) (*Usage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	total, err := reduce(ctx, parts, o.workers)
	o.metrics.RecordReduce(len(parts), time.Since(start), err)

	if err != nil {
		o.logger.WarnContext(ctx, "usage reduce failed",
			"parts", len(parts),
			"error", err,
		)
		return nil, err
	}
	o.logger.DebugContext(ctx, "usage reduce completed",
		"parts", len(parts),
		"workers", o.workers,
		"duration", time.Since(start),
	)
	return total, nil
}

func reduce(ctx context.Context, parts []*Usage, workers int) (*Usage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workers = max(1, min(workers, len(parts)))
	if workers <= 1 {
		return foldChunk(ctx, parts)
	}

	chunkSize := (len(parts) + workers - 1) / workers
	partials := make([]*Usage, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunkSize
		hi := min(lo+chunkSize, len(parts))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			partial, err := foldChunk(gctx, parts[lo:hi])
			if err != nil {
				return err
			}
			partials[w] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Sum(partials...), nil
}

func foldChunk(ctx context.Context, chunk []*Usage) (*Usage, error) {
	var total *Usage
	for _, p := range chunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		total = AggregateOpts(total, p)
	}
	return total, nil
}
