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

package errors

import (
	"github.com/pingcap/errors"
)

// errors
var (
	// ErrInvalidParameter is returned when the run parameters are rejected
	// before any generation, sorting or persistence work starts.
	ErrInvalidParameter = errors.Normalize(
		"invalid parameter: %s",
		errors.RFCCodeText("SortBench:ErrInvalidParameter"),
	)
	ErrUnknownScenario = errors.Normalize(
		"unknown scenario: %s",
		errors.RFCCodeText("SortBench:ErrUnknownScenario"),
	)
	// ErrUnknownStrategy is returned by the sorting engine for a strategy
	// name or kind outside the supported set.
	ErrUnknownStrategy = errors.Normalize(
		"unknown sorting strategy: %s",
		errors.RFCCodeText("SortBench:ErrUnknownStrategy"),
	)
	// ErrPersistResult is returned when the result artifact can not be written.
	ErrPersistResult = errors.Normalize(
		"persist result to %s failed",
		errors.RFCCodeText("SortBench:ErrPersistResult"),
	)
	ErrLoadConfig = errors.Normalize(
		"load config from %s failed",
		errors.RFCCodeText("SortBench:ErrLoadConfig"),
	)
	ErrRunCanceled = errors.Normalize(
		"sort run canceled before %s",
		errors.RFCCodeText("SortBench:ErrRunCanceled"),
	)
)
