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

	"github.com/pingcap/sortbench/pkg/metrics"
	"go.uber.org/atomic"
)

// Task is a run executing in the background. The result or error of the run
// is always kept on the task until the caller collects it.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	closed atomic.Bool

	result *RunResult
	err    error
}

// Go starts a run on its own goroutine and returns immediately.
func Go(ctx context.Context, params Params) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	metrics.InflightTasksGauge.Inc()
	go func() {
		defer metrics.InflightTasksGauge.Dec()
		defer cancel()
		t.result, t.err = Run(ctx, params)
		t.closed.Store(true)
		close(t.done)
	}()
	return t
}

// Done is closed once the run has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether the run has finished without blocking.
func (t *Task) Finished() bool {
	return t.closed.Load()
}

// Cancel asks the run to stop at its next step boundary. A run that already
// passed its last boundary still completes.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the run finishes or ctx is done. When ctx ends first the
// run keeps going and ctx.Err() is returned.
func (t *Task) Wait(ctx context.Context) (*RunResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.result, t.err
	}
}

// Poll returns the outcome without blocking. done is false while the run is
// still in progress.
func (t *Task) Poll() (done bool, result *RunResult, err error) {
	select {
	case <-t.done:
		return true, t.result, t.err
	default:
		return false, nil, nil
	}
}
