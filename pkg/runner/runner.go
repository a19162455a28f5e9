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
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pingcap/log"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/fleet"
	"github.com/pingcap/sortbench/pkg/metrics"
	"github.com/pingcap/sortbench/pkg/persist"
	"github.com/pingcap/sortbench/pkg/sorter"
	"github.com/pingcap/sortbench/pkg/timing"
	"go.uber.org/zap"
)

// Params are the inputs of one run.
type Params struct {
	Scenario string
	Strategy string
	Size     int
	Min      int
	Max      int
	// Seed of 0 seeds the generator from the clock.
	Seed      int64
	OutputDir string
}

// Validate checks the parameters before any work is done. The strategy name
// is resolved by the sorting engine and is not checked here.
func (p Params) Validate() error {
	if _, err := fleet.ParseScenario(p.Scenario); err != nil {
		return err
	}
	if p.Size < 1 || p.Size > fleet.MaxSize {
		return errors.ErrInvalidParameter.GenWithStackByArgs(
			fmt.Sprintf("fleet size must be between 1 and %d, got %d", fleet.MaxSize, p.Size))
	}
	if p.Min > p.Max {
		return errors.ErrInvalidParameter.GenWithStackByArgs(
			fmt.Sprintf("min crew count %d is greater than max crew count %d", p.Min, p.Max))
	}
	return nil
}

func (p Params) rng() *rand.Rand {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RunResult is the outcome of one run.
type RunResult struct {
	RunID         string
	Scenario      fleet.ScenarioKind
	Strategy      sorter.StrategyKind
	Original      fleet.Dataset
	Sorted        fleet.Dataset
	ElapsedMillis float64
	// Path is where the artifact was written.
	Path string
}

// Run executes generate, sort and persist in order. Cancellation is honoured
// between the steps only; a canceled run writes nothing.
func Run(ctx context.Context, params Params) (*RunResult, error) {
	runID := uuid.NewString()
	result, err := run(ctx, runID, params)
	observeRun(runID, params, result, err)
	return result, err
}

func run(ctx context.Context, runID string, params Params) (*RunResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	scenario, _ := fleet.ParseScenario(params.Scenario)
	kind, err := sorter.ParseStrategy(params.Strategy)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, "generate"); err != nil {
		return nil, err
	}
	log.Info("generating fleet",
		zap.String("runID", runID),
		zap.Stringer("scenario", scenario),
		zap.Int("size", params.Size),
		zap.Int("min", params.Min),
		zap.Int("max", params.Max))
	original, err := fleet.Generate(scenario, params.Size, params.Min, params.Max, params.rng())
	if err != nil {
		return nil, errors.Trace(err)
	}
	metrics.GeneratedRecordsCounter.WithLabelValues(scenario.String()).Add(float64(len(original)))

	if err := checkpoint(ctx, "sort"); err != nil {
		return nil, err
	}
	sorted, elapsed, err := timedSort(original, kind)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, "persist"); err != nil {
		return nil, err
	}
	path, err := persistResult(params.OutputDir, original, sorted, kind, elapsed)
	if err != nil {
		return nil, err
	}
	return &RunResult{
		RunID:         runID,
		Scenario:      scenario,
		Strategy:      kind,
		Original:      original,
		Sorted:        sorted,
		ElapsedMillis: elapsed,
		Path:          path,
	}, nil
}

// timedSort measures only the sort call.
func timedSort(ds fleet.Dataset, kind sorter.StrategyKind) (fleet.Dataset, float64, error) {
	strategy, err := sorter.New(kind)
	if err != nil {
		return nil, 0, err
	}
	sorted, elapsed := timing.Measure(func() fleet.Dataset {
		return strategy.Sort(ds)
	})
	metrics.SortDurationHistogram.WithLabelValues(kind.String()).Observe(elapsed / 1000)
	return sorted, elapsed, nil
}

func persistResult(dir string, original, sorted fleet.Dataset, kind sorter.StrategyKind, elapsed float64) (string, error) {
	start := time.Now()
	path, err := persist.NewWriter(dir).Persist(original, sorted, kind, elapsed)
	metrics.PersistDurationHistogram.Observe(time.Since(start).Seconds())
	return path, err
}

func checkpoint(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapError(errors.ErrRunCanceled, err, step)
	}
	return nil
}

func observeRun(runID string, params Params, result *RunResult, err error) {
	status := metrics.RunStatusSuccess
	switch {
	case err == nil:
		log.Info("sort run finished",
			zap.String("runID", runID),
			zap.Stringer("strategy", result.Strategy),
			zap.Int("records", len(result.Original)),
			zap.String("elapsedMs", timing.FormatMillis(result.ElapsedMillis)),
			zap.String("path", result.Path))
	case errors.IsValidationError(err) || errors.IsUnknownStrategy(err):
		status = metrics.RunStatusInvalid
		log.Warn("sort run rejected", zap.String("runID", runID), zap.Error(err))
	case errors.IsCanceled(err):
		status = metrics.RunStatusCanceled
		log.Info("sort run canceled", zap.String("runID", runID), zap.Error(err))
	default:
		status = metrics.RunStatusFailed
		log.Error("sort run failed", zap.String("runID", runID), zap.Error(err))
	}
	strategy, scenario := "unknown", "unknown"
	if kind, err := sorter.ParseStrategy(params.Strategy); err == nil {
		strategy = kind.String()
	}
	if s, err := fleet.ParseScenario(params.Scenario); err == nil {
		scenario = s.String()
	}
	metrics.RunCounter.WithLabelValues(strategy, scenario, status).Inc()
}
