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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/log"
	"github.com/pingcap/sortbench/pkg/config"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/metrics"
	"github.com/pingcap/sortbench/pkg/runner"
	"github.com/pingcap/sortbench/pkg/timing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	FlagConfig      = "config"
	FlagLogLevel    = "log-level"
	FlagLogFile     = "log-file"
	FlagOutputDir   = "output-dir"
	FlagMetricsFile = "metrics-file"
	FlagScenario    = "scenario"
	FlagStrategy    = "strategy"
	FlagSize        = "size"
	FlagMin         = "min"
	FlagMax         = "max"
	FlagSeed        = "seed"
	FlagStrategies  = "strategies"
	FlagRepeat      = "repeat"
	FlagParallel    = "parallel"
)

// options are the command line values. Flags that were set explicitly
// override the configuration file.
type options struct {
	configPath  string
	logLevel    string
	logFile     string
	outputDir   string
	metricsFile string

	scenario string
	strategy string
	size     int
	min      int
	max      int
	seed     int64

	strategies []string
	repeat     int
	parallel   int
}

func newRootCommand() *cobra.Command {
	o := &options{}
	defaults := config.GetDefaultConfig()

	rootCmd := &cobra.Command{
		Use:           "sortbench",
		Short:         "Benchmark sorting strategies over a generated fleet",
		Long:          "Generate a fleet of ships keyed by crew count, sort it with the chosen strategy, and write the keys and timing to fleet_sorted_<strategy>.txt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&o.configPath, FlagConfig, "c", "", "configuration file path")
	pf.StringVar(&o.logLevel, FlagLogLevel, defaults.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&o.logFile, FlagLogFile, "", "log file path, empty means stdout")
	pf.StringVarP(&o.outputDir, FlagOutputDir, "o", defaults.OutputDir, "directory the result files are written to")
	pf.StringVar(&o.metricsFile, FlagMetricsFile, "", "write prometheus metrics to this file when the command finishes")
	pf.StringVar(&o.scenario, FlagScenario, defaults.Run.Scenario, "generation scenario: Initial, Updated or Final")
	pf.IntVarP(&o.size, FlagSize, "n", defaults.Run.Size, "number of ships, 1 to 100000")
	pf.IntVar(&o.min, FlagMin, defaults.Run.Min, "minimum crew count")
	pf.IntVar(&o.max, FlagMax, defaults.Run.Max, "maximum crew count")
	pf.Int64Var(&o.seed, FlagSeed, 0, "random seed, 0 seeds from the clock")

	rootCmd.AddCommand(newRunCommand(o), newCompareCommand(o))
	return rootCmd
}

func newRunCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a fleet, sort it once and persist the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.complete(cmd)
			if err != nil {
				return newExitError(err)
			}
			return execute(cmd, cfg, func(ctx context.Context) error {
				return runOnce(ctx, cmd.OutOrStdout(), cfg)
			})
		},
	}
	cmd.Flags().StringVarP(&o.strategy, FlagStrategy, "s", config.DefaultStrategy,
		"sorting strategy: \"Merge Sort\", \"Quick Sort\", \"Smooth Sort\" or merge, quick, smooth")
	return cmd
}

func newCompareCommand(o *options) *cobra.Command {
	defaults := config.GetDefaultConfig()
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Benchmark several strategies on the same generated fleet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.complete(cmd)
			if err != nil {
				return newExitError(err)
			}
			return execute(cmd, cfg, func(ctx context.Context) error {
				return compare(ctx, cmd.OutOrStdout(), cfg)
			})
		},
	}
	cmd.Flags().StringSliceVar(&o.strategies, FlagStrategies, defaults.Compare.Strategies,
		"comma separated strategies or 'all'")
	cmd.Flags().IntVar(&o.repeat, FlagRepeat, defaults.Compare.Repeat, "sorts per strategy")
	cmd.Flags().IntVar(&o.parallel, FlagParallel, defaults.Compare.Parallel, "strategies benchmarked at the same time")
	return cmd
}

// complete builds the effective config from the file and the changed flags.
func (o *options) complete(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetDefaultConfig()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed(FlagLogLevel) {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed(FlagLogFile) {
		cfg.LogFile = o.logFile
	}
	if flags.Changed(FlagOutputDir) {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed(FlagMetricsFile) {
		cfg.MetricsFile = o.metricsFile
	}
	if flags.Changed(FlagScenario) {
		cfg.Run.Scenario = o.scenario
	}
	if flags.Changed(FlagStrategy) {
		cfg.Run.Strategy = o.strategy
	}
	if flags.Changed(FlagSize) {
		cfg.Run.Size = o.size
	}
	if flags.Changed(FlagMin) {
		cfg.Run.Min = o.min
	}
	if flags.Changed(FlagMax) {
		cfg.Run.Max = o.max
	}
	if flags.Changed(FlagSeed) {
		cfg.Run.Seed = o.seed
	}
	if flags.Changed(FlagStrategies) {
		cfg.Compare.Strategies = o.strategies
	}
	if flags.Changed(FlagRepeat) {
		cfg.Compare.Repeat = o.repeat
	}
	if flags.Changed(FlagParallel) {
		cfg.Compare.Parallel = o.parallel
	}
	if err := cfg.ValidateAndAdjust(); err != nil {
		return nil, errors.ErrInvalidParameter.GenWithStackByArgs(err.Error())
	}
	return cfg, nil
}

func paramsFromConfig(cfg *config.Config) runner.Params {
	return runner.Params{
		Scenario:  cfg.Run.Scenario,
		Strategy:  cfg.Run.Strategy,
		Size:      cfg.Run.Size,
		Min:       cfg.Run.Min,
		Max:       cfg.Run.Max,
		Seed:      cfg.Run.Seed,
		OutputDir: cfg.OutputDir,
	}
}

// execute sets up logging and metrics around fn and maps its error to an
// exit code.
func execute(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context) error) error {
	if err := initLogger(cfg); err != nil {
		return &ExitError{Code: ExitCodeExecuteFailed, Err: err}
	}
	registry := prometheus.NewRegistry()
	metrics.InitMetrics(registry)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := fn(ctx)
	if cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsFile, registry); werr != nil {
			log.Warn("write metrics file failed", zap.String("path", cfg.MetricsFile), zap.Error(werr))
		}
	}
	if err != nil {
		return newExitError(err)
	}
	return nil
}

func initLogger(cfg *config.Config) error {
	lg, props, err := log.InitLogger(&log.Config{
		Level: cfg.LogLevel,
		File:  log.FileLogConfig{Filename: cfg.LogFile},
	})
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

// runOnce submits the run as a background task and waits for it, the way
// an interactive surface would.
func runOnce(ctx context.Context, out io.Writer, cfg *config.Config) error {
	fmt.Fprintf(out, "Generating a fleet of %d ships...\n", cfg.Run.Size)
	task := runner.Go(ctx, paramsFromConfig(cfg))
	res, err := task.Wait(ctx)
	if err != nil && ctx.Err() != nil {
		// The task shares ctx, so it stops at its next step boundary or
		// finishes; wait for it to leave the output directory clean.
		res, err = task.Wait(context.Background())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sort results saved to file:\n%s\n", res.Path)
	fmt.Fprintf(out, "Elapsed: %s ms\n", timing.FormatMillis(res.ElapsedMillis))
	return nil
}

func compare(ctx context.Context, out io.Writer, cfg *config.Config) error {
	results, err := runner.Compare(ctx, paramsFromConfig(cfg), runner.CompareOptions{
		Strategies: cfg.Compare.Strategies,
		Repeat:     cfg.Compare.Repeat,
		Parallel:   cfg.Compare.Parallel,
	})
	if err != nil {
		return err
	}
	printSummary(out, results)
	return nil
}

func printSummary(out io.Writer, results []runner.CompareResult) {
	fmt.Fprintf(out, "%-12s %-6s %-12s %-12s %-36s %s\n", "Strategy", "Runs", "Min(ms)", "Mean(ms)", "p50/p95/p99/max(ms)", "File")
	for _, res := range results {
		fmt.Fprintf(out, "%-12s %-6d %-12s %-12s %-36s %s\n",
			res.Strategy,
			res.Summary.Count,
			timing.FormatMillis(res.Summary.Min),
			timing.FormatMillis(res.Summary.Mean),
			res.Summary.LatencySummary(),
			res.Path)
	}
}
