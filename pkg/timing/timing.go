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

package timing

import (
	"strconv"
	"time"

	"github.com/pingcap/sortbench/pkg/fleet"
)

// Measure runs fn once and returns its result together with the wall-clock
// time it took in milliseconds. time.Now carries a monotonic reading, so the
// measurement is immune to wall clock adjustments.
func Measure(fn func() fleet.Dataset) (fleet.Dataset, float64) {
	start := time.Now()
	out := fn()
	return out, DurationToMillis(time.Since(start))
}

// DurationToMillis converts d to fractional milliseconds.
func DurationToMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}

// FormatMillis renders ms with three decimals, the precision used in
// artifacts and reports.
func FormatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 3, 64)
}
