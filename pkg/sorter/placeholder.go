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
	"cmp"
	"slices"

	"github.com/pingcap/sortbench/pkg/fleet"
)

// stableSorter backs the "Smooth Sort" entry. It is a placeholder that
// delegates to the standard library stable sort.
type stableSorter struct{}

func (stableSorter) Sort(ds fleet.Dataset) fleet.Dataset {
	out := ds.Clone()
	slices.SortStableFunc(out, func(a, b fleet.Record) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
