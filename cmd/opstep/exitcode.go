// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/walteh/opstep/pkg/operation"
	"github.com/walteh/opstep/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// Process exit codes. A configured error_exit_code is used on top of these
// when fail_on_error_message is set.
const (
	exitOK            = 0
	exitFailure       = 1
	exitMalformed     = 2
	exitUnimplemented = 3
)

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func exitCodeFor(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var malformed *record.MalformedInputError
	if errors.As(err, &malformed) {
		return exitMalformed
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return exitMalformed
	}
	var unimpl *operation.UnimplementedOperationError
	if errors.As(err, &unimpl) {
		return exitUnimplemented
	}
	return exitFailure
}
