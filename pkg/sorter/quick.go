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

type quickSorter struct{}

// Sort implements Strategy with a three-way quicksort that builds new
// partitions instead of swapping in place. The pivot is the key of the middle
// element; crafted key layouts degrade it to O(n^2).
func (quickSorter) Sort(ds fleet.Dataset) fleet.Dataset {
	return quickSort(ds)
}

func quickSort(ds fleet.Dataset) fleet.Dataset {
	if len(ds) <= 1 {
		return ds.Clone()
	}
	less, equal, greater := partition3Way(ds, ds[len(ds)/2].Key)

	out := make(fleet.Dataset, 0, len(ds))
	out = append(out, quickSort(less)...)
	out = append(out, equal...)
	return append(out, quickSort(greater)...)
}

// partition3Way splits ds around pivot. Every group keeps the input order of
// its records.
func partition3Way(ds fleet.Dataset, pivot int) (less, equal, greater fleet.Dataset) {
	for _, r := range ds {
		switch {
		case r.Key < pivot:
			less = append(less, r)
		case r.Key > pivot:
			greater = append(greater, r)
		default:
			equal = append(equal, r)
		}
	}
	return less, equal, greater
}
