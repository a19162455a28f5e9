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

// Re-export the helpers of github.com/pingcap/errors so callers only need
// to import this package.
var (
	New    = errors.New
	Errorf = errors.Errorf
	Trace  = errors.Trace
)

// WrapError generates a new error based on given `*errors.Error`, wraps the err
// as cause error.
// If given `err` is nil, returns a nil error, which is different from `Wrap`
// in pingcap/errors.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}

type rfcCoder interface {
	RFCCode() errors.RFCErrorCode
}

// RFCCode returns the RFC code of the first normalized error found in the
// cause chain of err.
func RFCCode(err error) (errors.RFCErrorCode, bool) {
	for err != nil {
		if coder, ok := err.(rfcCoder); ok {
			return coder.RFCCode(), true
		}
		err = unwrapOnce(err)
	}
	return "", false
}

func unwrapOnce(err error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Cause() error }:
		return e.Cause()
	}
	return nil
}

func hasCode(err error, target *errors.Error) bool {
	code, ok := RFCCode(err)
	return ok && code == target.RFCCode()
}

// IsValidationError reports whether err rejected the run parameters.
// An unknown scenario name counts as a validation failure.
func IsValidationError(err error) bool {
	return hasCode(err, ErrInvalidParameter) || hasCode(err, ErrUnknownScenario)
}

// IsUnknownStrategy reports whether err was caused by an unsupported strategy.
func IsUnknownStrategy(err error) bool {
	return hasCode(err, ErrUnknownStrategy)
}

// IsPersistenceError reports whether err was caused by a failed artifact write.
func IsPersistenceError(err error) bool {
	return hasCode(err, ErrPersistResult)
}

// IsConfigError reports whether err was caused by a bad configuration file.
func IsConfigError(err error) bool {
	return hasCode(err, ErrLoadConfig)
}

// IsCanceled reports whether the run stopped at a cancellation boundary.
func IsCanceled(err error) bool {
	return hasCode(err, ErrRunCanceled)
}
