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

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"strings"

	"github.com/pingcap/sortbench/pkg/errors"
)

// ScenarioKind selects how a dataset is generated.
type ScenarioKind int

const (
	// ScenarioInitial generates a fully random fleet.
	ScenarioInitial ScenarioKind = iota
	// ScenarioUpdated generates a sorted first half followed by a random second half,
	// modelling fleet growth on top of an already ordered prefix.
	ScenarioUpdated
	// ScenarioFinal generates a fully random fleet, same as ScenarioInitial.
	ScenarioFinal
)

var scenarioNames = map[ScenarioKind]string{
	ScenarioInitial: "Initial",
	ScenarioUpdated: "Updated",
	ScenarioFinal:   "Final",
}

// Scenarios returns every supported scenario in display order.
func Scenarios() []ScenarioKind {
	return []ScenarioKind{ScenarioInitial, ScenarioUpdated, ScenarioFinal}
}

func (s ScenarioKind) String() string {
	if name, ok := scenarioNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseScenario resolves a scenario by name, ignoring case and surrounding spaces.
func ParseScenario(name string) (ScenarioKind, error) {
	trimmed := strings.TrimSpace(name)
	for _, s := range Scenarios() {
		if strings.EqualFold(trimmed, scenarioNames[s]) {
			return s, nil
		}
	}
	return 0, errors.ErrUnknownScenario.GenWithStackByArgs(name)
}

// shipNames is the pool record labels are drawn from.
var shipNames = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon",
	"Zeta", "Icarus", "Kronos", "Leviathan", "Nova",
}

// Generate builds a dataset of size records with keys in [vmin, vmax].
// The result only depends on the state of rng, so a seeded source gives a
// reproducible dataset.
func Generate(scenario ScenarioKind, size int, vmin, vmax int, rng *rand.Rand) (Dataset, error) {
	if size < 0 {
		return nil, errors.ErrInvalidParameter.GenWithStackByArgs("size must not be negative")
	}
	if vmin > vmax {
		return nil, errors.ErrInvalidParameter.GenWithStackByArgs("min crew count is greater than max crew count")
	}

	switch scenario {
	case ScenarioInitial, ScenarioFinal:
		return randomRecords(size, vmin, vmax, rng), nil
	case ScenarioUpdated:
		base := randomRecords(size/2, vmin, vmax, rng)
		slices.SortStableFunc(base, func(a, b Record) int {
			return cmp.Compare(a.Key, b.Key)
		})
		appended := randomRecords(size-len(base), vmin, vmax, rng)
		return append(base, appended...), nil
	default:
		return nil, errors.ErrUnknownScenario.GenWithStackByArgs(scenario.String())
	}
}

func randomRecords(n int, vmin, vmax int, rng *rand.Rand) Dataset {
	out := make(Dataset, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Record{
			Label: shipNames[rng.Intn(len(shipNames))],
			Key:   randomKey(vmin, vmax, rng),
		})
	}
	return out
}

// randomKey draws uniformly from [vmin, vmax] without overflowing on wide ranges.
func randomKey(vmin, vmax int, rng *rand.Rand) int {
	// wraps to 0 only when the range covers every int64 value
	span := uint64(vmax-vmin) + 1
	switch {
	case span == 0:
		return int(rng.Uint64())
	case span <= math.MaxInt64:
		return vmin + int(rng.Int63n(int64(span)))
	default:
		return vmin + int(rng.Uint64()%span)
	}
}
