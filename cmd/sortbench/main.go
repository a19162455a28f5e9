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

package main

import (
	"fmt"
	"os"

	"github.com/pingcap/sortbench/pkg/errors"
)

const (
	ExitCodeExecuteFailed      = 1
	ExitCodeInvalidParameter   = 2
	ExitCodeDecodeConfigFailed = 3
	ExitCodePersistFailed      = 4
)

// ExitError carries the process exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// newExitError picks the exit code from the error class.
func newExitError(err error) *ExitError {
	code := ExitCodeExecuteFailed
	switch {
	case errors.IsValidationError(err), errors.IsUnknownStrategy(err):
		code = ExitCodeInvalidParameter
	case errors.IsConfigError(err):
		code = ExitCodeDecodeConfigFailed
	case errors.IsPersistenceError(err):
		code = ExitCodePersistFailed
	}
	return &ExitError{Code: code, Err: err}
}

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if ee, ok := err.(*ExitError); ok {
			os.Exit(ee.Code)
		}
		os.Exit(ExitCodeExecuteFailed)
	}
}
