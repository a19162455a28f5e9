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

package fleet

// MaxSize is the largest dataset a run accepts.
const MaxSize = 100000

// Record is one ship of the fleet. Key is the crew count and the only
// field records are ordered by; Label is cosmetic.
type Record struct {
	Label string
	Key   int
}

// Dataset is an ordered sequence of records. The order produced by the
// generator is the reference used to judge sort stability.
type Dataset []Record

// Clone returns a copy that shares no backing array with d.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Keys returns the keys in dataset order.
func (d Dataset) Keys() []int {
	keys := make([]int, len(d))
	for i, r := range d {
		keys[i] = r.Key
	}
	return keys
}

// IsSortedByKey reports whether keys never decrease.
func (d Dataset) IsSortedByKey() bool {
	for i := 1; i < len(d); i++ {
		if d[i-1].Key > d[i].Key {
			return false
		}
	}
	return true
}

// Equal reports whether both datasets hold the same records in the same order.
func (d Dataset) Equal(other Dataset) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}
