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

import "github.com/pingcap/sortbench/pkg/fleet"

type mergeSorter struct{}

// Sort implements Strategy with a top-down merge sort.
func (mergeSorter) Sort(ds fleet.Dataset) fleet.Dataset {
	return mergeSort(ds.Clone())
}

// mergeSort returns a sorted slice that may alias ds.
func mergeSort(ds fleet.Dataset) fleet.Dataset {
	if len(ds) <= 1 {
		return ds
	}
	mid := len(ds) / 2
	left := mergeSort(ds[:mid])
	right := mergeSort(ds[mid:])
	return merge(left, right)
}

// merge takes from left on equal keys, which keeps the sort stable.
func merge(left, right fleet.Dataset) fleet.Dataset {
	result := make(fleet.Dataset, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if right[j].Key < left[i].Key {
			result = append(result, right[j])
			j++
		} else {
			result = append(result, left[i])
			i++
		}
	}
	result = append(result, left[i:]...)
	return append(result, right[j:]...)
}
