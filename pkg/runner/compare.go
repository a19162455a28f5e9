// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pingcap/log"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/fleet"
	"github.com/pingcap/sortbench/pkg/metrics"
	"github.com/pingcap/sortbench/pkg/sorter"
	"github.com/pingcap/sortbench/pkg/timing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CompareOptions controls Compare.
type CompareOptions struct {
	// Strategies are names accepted by sorter.ParseStrategy; "all" selects every strategy.
	Strategies []string
	// Repeat is how many times each strategy sorts the dataset.
	Repeat int
	// Parallel caps how many strategies are benchmarked at the same time.
	// Values above 1 make the strategies compete for CPU.
	Parallel int
}

// CompareResult is the outcome for one strategy.
type CompareResult struct {
	Strategy sorter.StrategyKind
	Summary  timing.Summary
	// ElapsedMillis is the time of the last repetition, the one persisted.
	ElapsedMillis float64
	Path          string
}

// ParseStrategies resolves names in order, dropping duplicates.
func ParseStrategies(names []string) ([]sorter.StrategyKind, error) {
	seen := make(map[sorter.StrategyKind]struct{})
	kinds := make([]sorter.StrategyKind, 0, len(names))
	for _, name := range names {
		if name == "all" {
			return sorter.Kinds(), nil
		}
		kind, err := sorter.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[kind]; !ok {
			seen[kind] = struct{}{}
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil, errors.ErrInvalidParameter.GenWithStackByArgs("no strategy selected")
	}
	return kinds, nil
}

// Compare generates one dataset from params and benchmarks every selected
// strategy on it. params.Strategy is ignored. Each strategy's last sorted
// output is persisted to its own artifact.
func Compare(ctx context.Context, params Params, opts CompareOptions) ([]CompareResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	kinds, err := ParseStrategies(opts.Strategies)
	if err != nil {
		return nil, err
	}
	if opts.Repeat <= 0 {
		opts.Repeat = 1
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if err := checkpoint(ctx, "generate"); err != nil {
		return nil, err
	}

	compareID := uuid.NewString()
	scenario, _ := fleet.ParseScenario(params.Scenario)
	original, err := fleet.Generate(scenario, params.Size, params.Min, params.Max, params.rng())
	if err != nil {
		return nil, errors.Trace(err)
	}
	metrics.GeneratedRecordsCounter.WithLabelValues(scenario.String()).Add(float64(len(original)))
	log.Info("comparing strategies",
		zap.String("compareID", compareID),
		zap.Stringer("scenario", scenario),
		zap.Int("size", len(original)),
		zap.Int("strategies", len(kinds)),
		zap.Int("repeat", opts.Repeat),
		zap.Int("parallel", opts.Parallel))

	results := make([]CompareResult, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, kind := range kinds {
		g.Go(func() error {
			res, err := benchmarkStrategy(gctx, params.OutputDir, original, kind, opts.Repeat)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("compare failed", zap.String("compareID", compareID), zap.Error(err))
		return nil, err
	}
	return results, nil
}

func benchmarkStrategy(
	ctx context.Context, dir string, original fleet.Dataset, kind sorter.StrategyKind, repeat int,
) (CompareResult, error) {
	stats := timing.NewStats(kind.String())
	var (
		sorted  fleet.Dataset
		elapsed float64
		err     error
	)
	for i := 0; i < repeat; i++ {
		if err := checkpoint(ctx, "sort"); err != nil {
			return CompareResult{}, err
		}
		sorted, elapsed, err = timedSort(original, kind)
		if err != nil {
			return CompareResult{}, err
		}
		stats.Record(elapsed)
	}
	if err := checkpoint(ctx, "persist"); err != nil {
		return CompareResult{}, err
	}
	path, err := persistResult(dir, original, sorted, kind, elapsed)
	if err != nil {
		return CompareResult{}, err
	}
	return CompareResult{
		Strategy:      kind,
		Summary:       stats.Snapshot(),
		ElapsedMillis: elapsed,
		Path:          path,
	}, nil
}
