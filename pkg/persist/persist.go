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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pingcap/failpoint"
	"github.com/pingcap/log"
	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/fleet"
	"github.com/pingcap/sortbench/pkg/sorter"
	"github.com/pingcap/sortbench/pkg/timing"
	"go.uber.org/zap"
)

// PersistFailedFailpoint makes Persist fail before touching the output
// directory while it is enabled through failpoint.Enable or GO_FAILPOINTS.
const PersistFailedFailpoint = "github.com/pingcap/sortbench/pkg/persist/sortbenchPersistFailed"

const (
	fileNamePrefix = "fleet_sorted_"
	fileNameSuffix = ".txt"
	tempPattern    = ".fleet_sorted_*.tmp"
)

// FileName returns the artifact name for kind: the display name with spaces
// replaced by underscores, e.g. fleet_sorted_Merge_Sort.txt.
func FileName(kind sorter.StrategyKind) string {
	return fileNamePrefix + strings.ReplaceAll(kind.String(), " ", "_") + fileNameSuffix
}

// Format writes the artifact body. Only keys are written, labels are dropped.
func Format(w io.Writer, original, sorted fleet.Dataset, kind sorter.StrategyKind, elapsedMillis float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Initial fleet (%d):\n", len(original))
	writeKeys(bw, original)
	fmt.Fprintf(bw, "\nSorted fleet (%s):\n", kind)
	writeKeys(bw, sorted)
	fmt.Fprintf(bw, "\nElapsed: %s ms\n", timing.FormatMillis(elapsedMillis))
	return bw.Flush()
}

func writeKeys(w *bufio.Writer, ds fleet.Dataset) {
	var buf []byte
	for _, r := range ds {
		buf = strconv.AppendInt(buf[:0], int64(r.Key), 10)
		buf = append(buf, ';', ' ')
		_, _ = w.Write(buf)
	}
}

// Writer persists run results into a directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer for dir. An empty dir means the working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Persist writes the artifact for one run and returns its path. Any existing
// artifact with the same name is replaced atomically: a failed write leaves the
// previous file untouched and no partial file behind.
func (w *Writer) Persist(original, sorted fleet.Dataset, kind sorter.StrategyKind, elapsedMillis float64) (string, error) {
	path := filepath.Join(w.dir, FileName(kind))

	if _, err := failpoint.Eval(PersistFailedFailpoint); err == nil {
		return "", errors.WrapError(errors.ErrPersistResult,
			errors.New("injected persist failure"), path)
	}

	if err := writeFileAtomic(path, func(f io.Writer) error {
		return Format(f, original, sorted, kind, elapsedMillis)
	}); err != nil {
		log.Warn("persist sort result failed",
			zap.String("path", path),
			zap.String("strategy", kind.String()),
			zap.Error(err))
		return "", errors.WrapError(errors.ErrPersistResult, err, path)
	}
	log.Info("sort result persisted",
		zap.String("path", path),
		zap.String("strategy", kind.String()),
		zap.Int("records", len(original)))
	return path, nil
}

// writeFileAtomic writes into a temporary file next to path and renames it
// over path once the content is synced.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return errors.Trace(err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Trace(err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Trace(err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Trace(err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Trace(err)
	}
	return nil
}
