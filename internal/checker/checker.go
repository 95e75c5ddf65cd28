// Package checker builds a Bloom filter from a key corpus and answers
// membership queries against it in input order.
package checker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rag-nar1/bloomcheck/filter"
	"github.com/rag-nar1/bloomcheck/filter/bloom"
)

// keys handled between context checks
const batchSize = 1024

type Config struct {
	FalsePositiveRate float64
	Hash              filter.Hash
	Workers           int
	Logger            *zap.Logger
}

func DefaultConfig() Config {
	return Config{
		FalsePositiveRate: 1e-7,
		Hash:              filter.Murmur3,
		Workers:           1,
		Logger:            zap.NewNop(),
	}
}

type Result struct {
	Key     string
	Verdict bloom.Verdict
}

type Checker struct {
	bf      *bloom.BloomFilter
	workers int
	logger  *zap.Logger
}

// Build sizes a filter for len(corpus) keys and inserts all of them. With
// more than one worker the corpus is split into strided shards inserted
// concurrently; Build returns only after every shard is done.
func Build(ctx context.Context, corpus []string, cfg Config) (*Checker, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Workers = max(cfg.Workers, 1)

	bf, err := bloom.NewWithEstimates(uint64(len(corpus)), cfg.FalsePositiveRate, bloom.WithHash(cfg.Hash))
	if err != nil {
		return nil, fmt.Errorf("checker: sizing filter for %d keys: %w", len(corpus), err)
	}
	cfg.Logger.Info("filter sized",
		zap.Int("n", len(corpus)),
		zap.Float64("p", cfg.FalsePositiveRate),
		zap.Uint64("m", bf.M),
		zap.Uint64("k", bf.K),
		zap.Int("workers", cfg.Workers),
	)

	c := &Checker{bf: bf, workers: cfg.Workers, logger: cfg.Logger}

	start := time.Now()
	if cfg.Workers == 1 {
		for i, key := range corpus {
			if i%batchSize == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			bf.InsertString(key)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < cfg.Workers; w++ {
			w := w
			g.Go(func() error {
				for i := w; i < len(corpus); i += cfg.Workers {
					if (i/cfg.Workers)%batchSize == 0 {
						if err := gctx.Err(); err != nil {
							return err
						}
					}
					bf.InsertConcurrent([]byte(corpus[i]))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	cfg.Logger.Debug("corpus inserted",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("fill_ratio", bf.FillRatio()),
		zap.Float64("estimated_fpr", bf.EstimatedFalsePositiveRate()),
	)
	return c, nil
}

// Check returns one result per query, in the order given.
func (c *Checker) Check(ctx context.Context, queries []string) ([]Result, error) {
	results := make([]Result, len(queries))
	start := time.Now()

	if c.workers == 1 || len(queries) < c.workers {
		for i, key := range queries {
			if i%batchSize == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			results[i] = Result{Key: key, Verdict: c.bf.Query(key)}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < c.workers; w++ {
			w := w
			g.Go(func() error {
				for i := w; i < len(queries); i += c.workers {
					if (i/c.workers)%batchSize == 0 {
						if err := gctx.Err(); err != nil {
							return err
						}
					}
					results[i] = Result{Key: queries[i], Verdict: c.bf.Query(queries[i])}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("queries answered",
		zap.Int("queries", len(queries)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func (c *Checker) Filter() *bloom.BloomFilter {
	return c.bf
}
