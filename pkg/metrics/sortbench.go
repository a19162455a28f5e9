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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "sortbench"

	// RunStatusSuccess and the other status values label RunCounter.
	RunStatusSuccess  = "success"
	RunStatusInvalid  = "invalid"
	RunStatusCanceled = "canceled"
	RunStatusFailed   = "failed"
)

var (
	// RunCounter counts finished runs by strategy, scenario and outcome.
	RunCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "total",
			Help:      "The number of finished sort runs",
		}, []string{"strategy", "scenario", "status"})

	// SortDurationHistogram records the measured sort time in seconds.
	SortDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sorter",
			Name:      "sort_duration_seconds",
			Help:      "Bucketed histogram of the time spent sorting one dataset",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2.0, 22), // 10us ~ 21s
		}, []string{"strategy"})

	GeneratedRecordsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "records_total",
			Help:      "The number of generated records",
		}, []string{"scenario"})

	PersistDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "persist",
			Name:      "write_duration_seconds",
			Help:      "Bucketed histogram of artifact write duration",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2.0, 16),
		})

	// InflightTasksGauge is the number of background runs not yet finished.
	InflightTasksGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "inflight_tasks",
			Help:      "The number of background sort runs in progress",
		})
)

// InitMetrics registers all sortbench metrics.
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(RunCounter)
	registry.MustRegister(SortDurationHistogram)
	registry.MustRegister(GeneratedRecordsCounter)
	registry.MustRegister(PersistDurationHistogram)
	registry.MustRegister(InflightTasksGauge)
}

// WriteTextfile dumps the gathered metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
