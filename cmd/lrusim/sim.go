package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"

	"github.com/djdv/go-lru/internal/workload"
	"github.com/djdv/go-lru/metrics"
)

// Accesses between cancellation checks.
const checkInterval = 1 << 10

type (
	simulator struct {
		cfg        Config
		logger     log.Logger
		reg        *prometheus.Registry
		patterns   []workload.Pattern
		candidates []candidate
	}
	result struct {
		pattern, cache string
		capacity       int
		accesses, hits int64
		elapsed        time.Duration
	}
)

func newSimulator(cfg Config, logger log.Logger) (*simulator, error) {
	patterns := workload.Patterns(cfg.Seed)
	if cfg.Pattern != allPatterns {
		pattern, err := workload.Lookup(cfg.Pattern, cfg.Seed)
		if err != nil {
			return nil, err
		}
		patterns = []workload.Pattern{pattern}
	}
	return &simulator{
		cfg:        cfg,
		logger:     logger,
		reg:        prometheus.NewRegistry(),
		patterns:   patterns,
		candidates: candidates(),
	}, nil
}

func (s *simulator) run(ctx context.Context) ([]result, error) {
	results := make([]result, 0, len(s.patterns)*len(s.candidates))
	for _, pattern := range s.patterns {
		var (
			sequence = pattern.Generate(s.cfg.Capacity)
			length   = s.cfg.Length
		)
		if length == 0 {
			length = len(sequence)
		}
		level.Info(s.logger).Log(
			"msg", "replaying workload",
			"pattern", pattern.Name,
			"accesses", length,
			"capacity", s.cfg.Capacity,
		)
		for _, candidate := range s.candidates {
			res, err := s.replay(ctx, pattern.Name, candidate, sequence, length)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", pattern.Name, candidate.name, err)
			}
			level.Debug(s.logger).Log(
				"msg", "replayed workload",
				"pattern", res.pattern,
				"cache", res.cache,
				"hits", res.hits,
				"elapsed", res.elapsed,
			)
			results = append(results, res)
		}
	}
	return results, nil
}

func (s *simulator) replay(ctx context.Context, pattern string, c candidate, sequence []int, length int) (result, error) {
	in := instrumentation{name: pattern + "/" + c.name}
	if c.instrumented && s.cfg.Metrics {
		in.reg = s.reg
		in.metrics = metrics.NewCache(s.reg, in.name)
	}
	cache, err := c.new(s.cfg.Capacity, in)
	if err != nil {
		return result{}, err
	}
	workers := 1
	if c.concurrent {
		workers = s.cfg.Workers
	}
	var (
		start = time.Now()
		hits  atomic.Int64
		mask  = len(sequence) - 1
		group errgroup.Group
	)
	for worker := range workers {
		group.Go(func() error {
			var local int64
			for n, i := 0, worker; i < length; n, i = n+1, i+workers {
				if n%checkInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if cache.access(sequence[i&mask]) {
					local++
				}
			}
			hits.Add(local)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result{}, err
	}
	return result{
		pattern:  pattern,
		cache:    c.name,
		capacity: s.cfg.Capacity,
		accesses: int64(length),
		hits:     hits.Load(),
		elapsed:  time.Since(start),
	}, nil
}

func (s *simulator) writeMetrics(w io.Writer) error {
	families, err := s.reg.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
