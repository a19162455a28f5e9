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
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats collects repeated measurements of one strategy.
// It is safe for concurrent use.
type Stats struct {
	name string

	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// NewStats creates an empty collector. Samples are kept in nanoseconds up to
// one hour with three significant digits.
func NewStats(name string) *Stats {
	return &Stats{
		name: name,
		hist: hdrhistogram.New(1, int64(time.Hour), 3),
	}
}

// Name returns the label the stats were created with.
func (s *Stats) Name() string {
	return s.name
}

// Record adds one measurement in milliseconds.
func (s *Stats) Record(ms float64) {
	nanos := int64(ms * float64(time.Millisecond))
	if nanos <= 0 {
		nanos = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hist.RecordValue(nanos); err != nil {
		_ = s.hist.RecordValue(s.hist.HighestTrackableValue())
	}
}

// Summary is a point-in-time view of Stats, all values in milliseconds.
type Summary struct {
	Name  string
	Count int64
	Min   float64
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Max   float64
}

// Snapshot summarizes everything recorded so far.
func (s *Stats) Snapshot() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := Summary{Name: s.name, Count: s.hist.TotalCount()}
	if summary.Count == 0 {
		return summary
	}
	summary.Min = nanosToMillis(s.hist.Min())
	summary.Mean = s.hist.Mean() / float64(time.Millisecond)
	summary.P50 = nanosToMillis(s.hist.ValueAtQuantile(50))
	summary.P95 = nanosToMillis(s.hist.ValueAtQuantile(95))
	summary.P99 = nanosToMillis(s.hist.ValueAtQuantile(99))
	summary.Max = nanosToMillis(s.hist.Max())
	return summary
}

func nanosToMillis(v int64) float64 {
	return DurationToMillis(time.Duration(v))
}

// LatencySummary renders p50/p95/p99/max.
func (s Summary) LatencySummary() string {
	return FormatMillis(s.P50) + "/" + FormatMillis(s.P95) + "/" + FormatMillis(s.P99) + "/" + FormatMillis(s.Max)
}
