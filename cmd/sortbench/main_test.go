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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pingcap/sortbench/pkg/config"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ee, ok := err.(*ExitError)
	require.True(t, ok, "unexpected error type %T: %v", err, err)
	require.Equal(t, code, ee.Code, "err:%v", err)
}

func TestExitError(t *testing.T) {
	inner := fmt.Errorf("something went wrong")
	ee := &ExitError{Code: ExitCodeExecuteFailed, Err: inner}
	require.Equal(t, "something went wrong", ee.Error())
	require.ErrorIs(t, ee, inner)
	require.Equal(t, ExitCodeExecuteFailed, newExitError(inner).Code)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := executeCommand(t, "run",
		"--output-dir", dir, "--scenario", "Initial", "--strategy", "merge",
		"--size", "5", "--min", "1", "--max", "1", "--seed", "7")
	require.NoError(t, err)
	path := filepath.Join(dir, "fleet_sorted_Merge_Sort.txt")
	require.Contains(t, out, path)
	require.Contains(t, out, "Elapsed: ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Equal(t, "Initial fleet (5):", lines[0])
	require.Equal(t, "1; 1; 1; 1; 1; ", lines[1])
	require.Equal(t, "Sorted fleet (Merge Sort):", lines[2])
	require.Equal(t, "1; 1; 1; 1; 1; ", lines[3])
	require.True(t, strings.HasPrefix(lines[4], "Elapsed: "))
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"size too large", []string{"--size", "100001"}, ExitCodeInvalidParameter},
		{"min above max", []string{"--min", "10", "--max", "5"}, ExitCodeInvalidParameter},
		{"unknown strategy", []string{"--strategy", "Nonexistent"}, ExitCodeInvalidParameter},
		{"unknown scenario", []string{"--scenario", "Sorted"}, ExitCodeInvalidParameter},
		{"bad log level", []string{"--log-level", "loud"}, ExitCodeInvalidParameter},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		args := append([]string{"run", "--output-dir", dir}, tt.args...)
		_, err := executeCommand(t, args...)
		requireExitCode(t, err, tt.code)
		entries, rerr := os.ReadDir(dir)
		require.NoError(t, rerr)
		require.Empty(t, entries, "case:%s", tt.name)
	}
}

func TestRunCommandPersistFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := executeCommand(t, "run", "--output-dir", dir, "--size", "10")
	requireExitCode(t, err, ExitCodePersistFailed)
}

func TestRunCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "sortbench.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
output-dir = %q
metrics-file = %q

[run]
scenario = "Updated"
strategy = "Quick Sort"
size = 10
min = 0
max = 9
seed = 3
`, dir, filepath.Join(dir, "metrics.prom"))), 0o644))

	// the flag wins over the file
	_, err := executeCommand(t, "run", "--config", cfgPath, "--size", "12")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "fleet_sorted_Quick_Sort.txt"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Initial fleet (12):\n"))

	metricsData, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	require.Contains(t, string(metricsData), "sortbench_run_total")
}

func TestRunCommandBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sortbench.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[run]\nships = 3\n"), 0o644))
	_, err := executeCommand(t, "run", "--config", cfgPath)
	requireExitCode(t, err, ExitCodeDecodeConfigFailed)

	_, err = executeCommand(t, "run", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	requireExitCode(t, err, ExitCodeDecodeConfigFailed)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := executeCommand(t, "compare",
		"--output-dir", dir, "--strategies", "all", "--repeat", "2",
		"--size", "200", "--seed", "11")
	require.NoError(t, err)
	require.Contains(t, out, "Strategy")
	for _, name := range []string{"Merge_Sort", "Quick_Sort", "Smooth_Sort"} {
		require.FileExists(t, filepath.Join(dir, "fleet_sorted_"+name+".txt"))
	}
	require.Contains(t, out, "Smooth Sort")
}

func TestCompareCommandRejectsBadStrategy(t *testing.T) {
	dir := t.TempDir()
	_, err := executeCommand(t, "compare", "--output-dir", dir, "--strategies", "merge,Nonexistent")
	requireExitCode(t, err, ExitCodeInvalidParameter)

	_, err = executeCommand(t, "compare", "--output-dir", dir, "--repeat", "0")
	requireExitCode(t, err, ExitCodeInvalidParameter)
}

func TestRunOnceCanceledReportsRunError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.GetDefaultConfig()
	cfg.OutputDir = dir
	cfg.Run.Seed = 7

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := runOnce(ctx, &out, cfg)
	require.Error(t, err)
	require.True(t, errors.IsCanceled(err), "err:%v", err)
	requireExitCode(t, newExitError(err), ExitCodeExecuteFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
