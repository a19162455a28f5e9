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

package sorter

import (
	"strings"

	"github.com/pingcap/sortbench/pkg/errors"
	"github.com/pingcap/sortbench/pkg/fleet"
)

// Strategy orders a dataset ascending by key. Implementations never modify
// their input and keep records with equal keys in input order.
type Strategy interface {
	Sort(ds fleet.Dataset) fleet.Dataset
}

// StrategyKind enumerates the supported sorting strategies.
type StrategyKind int

const (
	MergeSort StrategyKind = iota
	QuickSort
	// SmoothSortPlaceholder is not smoothsort. It stands in for it with the
	// standard library stable sort.
	SmoothSortPlaceholder
)

type kindInfo struct {
	display string
	alias   string
	impl    Strategy
}

var kinds = map[StrategyKind]kindInfo{
	MergeSort:             {display: "Merge Sort", alias: "merge", impl: mergeSorter{}},
	QuickSort:             {display: "Quick Sort", alias: "quick", impl: quickSorter{}},
	SmoothSortPlaceholder: {display: "Smooth Sort", alias: "smooth", impl: stableSorter{}},
}

// Kinds returns every supported strategy in display order.
func Kinds() []StrategyKind {
	return []StrategyKind{MergeSort, QuickSort, SmoothSortPlaceholder}
}

// String returns the display name used in artifacts and file names.
func (k StrategyKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.display
	}
	return "Unknown"
}

// Alias returns the short name accepted on the command line.
func (k StrategyKind) Alias() string {
	return kinds[k].alias
}

// ParseStrategy resolves a display name or alias, ignoring case and
// surrounding spaces.
func ParseStrategy(name string) (StrategyKind, error) {
	trimmed := strings.TrimSpace(name)
	for _, k := range Kinds() {
		info := kinds[k]
		if strings.EqualFold(trimmed, info.display) || strings.EqualFold(trimmed, info.alias) {
			return k, nil
		}
	}
	return 0, errors.ErrUnknownStrategy.GenWithStackByArgs(name)
}

// New returns the strategy implementing kind.
func New(kind StrategyKind) (Strategy, error) {
	info, ok := kinds[kind]
	if !ok {
		return nil, errors.ErrUnknownStrategy.GenWithStackByArgs(kind.String())
	}
	return info.impl, nil
}

// Sort returns a new dataset holding the records of ds ordered by key with
// the chosen strategy. ds itself is left untouched.
func Sort(ds fleet.Dataset, kind StrategyKind) (fleet.Dataset, error) {
	s, err := New(kind)
	if err != nil {
		return nil, err
	}
	return s.Sort(ds), nil
}
