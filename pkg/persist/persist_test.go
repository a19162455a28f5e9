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

package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pingcap/failpoint"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/fleet"
	"github.com/pingcap/sortbench/pkg/sorter"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "fleet_sorted_Merge_Sort.txt", FileName(sorter.MergeSort))
	require.Equal(t, "fleet_sorted_Quick_Sort.txt", FileName(sorter.QuickSort))
	require.Equal(t, "fleet_sorted_Smooth_Sort.txt", FileName(sorter.SmoothSortPlaceholder))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	original := fleet.Dataset{{Label: "Alpha", Key: 3}, {Label: "Beta", Key: 1}, {Label: "Gamma", Key: 2}}
	sorted := fleet.Dataset{{Label: "Beta", Key: 1}, {Label: "Gamma", Key: 2}, {Label: "Alpha", Key: 3}}

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, original, sorted, sorter.QuickSort, 1.23456))
	require.Equal(t,
		"Initial fleet (3):\n"+
			"3; 1; 2; \n"+
			"Sorted fleet (Quick Sort):\n"+
			"1; 2; 3; \n"+
			"Elapsed: 1.235 ms\n",
		buf.String())
	require.NotContains(t, buf.String(), "Alpha")
}

func TestPersistDegenerateFleet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ds := fleet.Dataset{{Label: "Nova", Key: 1}, {Label: "Zeta", Key: 1}, {Label: "Beta", Key: 1}, {Label: "Nova", Key: 1}, {Label: "Alpha", Key: 1}}
	path, err := NewWriter(dir).Persist(ds, ds.Clone(), sorter.MergeSort, 0.5)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "fleet_sorted_Merge_Sort.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Equal(t, "Initial fleet (5):", lines[0])
	require.Equal(t, "1; 1; 1; 1; 1; ", lines[1])
	require.Equal(t, "Sorted fleet (Merge Sort):", lines[2])
	require.Equal(t, "1; 1; 1; 1; 1; ", lines[3])
	require.Equal(t, "Elapsed: 0.500 ms", lines[4])
}

func TestPersistOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir)
	big := fleet.Dataset{{Label: "A", Key: 5}, {Label: "B", Key: 4}, {Label: "C", Key: 3}, {Label: "D", Key: 2}}
	_, err := w.Persist(big, big, sorter.SmoothSortPlaceholder, 10)
	require.NoError(t, err)

	small := fleet.Dataset{{Label: "A", Key: 7}}
	path, err := w.Persist(small, small, sorter.SmoothSortPlaceholder, 1)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Initial fleet (1):\n7; \nSorted fleet (Smooth Sort):\n7; \nElapsed: 1.000 ms\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestPersistMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := NewWriter(dir).Persist(fleet.Dataset{{Label: "A", Key: 1}}, fleet.Dataset{{Label: "A", Key: 1}}, sorter.MergeSort, 1)
	require.Error(t, err)
	require.True(t, errors.IsPersistenceError(err))
	require.Contains(t, err.Error(), "fleet_sorted_Merge_Sort.txt")
}

func TestPersistReadOnlyDirectoryKeepsPreviousFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir)
	ds := fleet.Dataset{{Label: "A", Key: 2}, {Label: "B", Key: 1}}
	path, err := w.Persist(ds, ds, sorter.QuickSort, 3)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err = w.Persist(fleet.Dataset{{Label: "C", Key: 9}}, fleet.Dataset{{Label: "C", Key: 9}}, sorter.QuickSort, 4)
	require.True(t, errors.IsPersistenceError(err))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestNewWriterDefaultsToWorkingDirectory(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".", NewWriter("").Dir())
	require.Equal(t, "out", NewWriter("out").Dir())
}

// Not parallel: the failpoint is process wide.
func TestPersistFailpoint(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	ds := fleet.Dataset{{Label: "A", Key: 1}}

	require.NoError(t, failpoint.Enable(PersistFailedFailpoint, "return(true)"))
	_, err := w.Persist(ds, ds, sorter.MergeSort, 1)
	require.NoError(t, failpoint.Disable(PersistFailedFailpoint))
	require.Error(t, err)
	require.True(t, errors.IsPersistenceError(err))
	require.Contains(t, err.Error(), "injected persist failure")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	path, err := w.Persist(ds, ds, sorter.MergeSort, 1)
	require.NoError(t, err)
	require.FileExists(t, path)
}
