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

package record

import "fmt"

// ❌ MalformedInputError reports a payload that does not match either record
// shape. Field names the offending key when one is known.
type MalformedInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: field %q %s", e.Field, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func malformed(field, reason string, err error) *MalformedInputError {
	return &MalformedInputError{Field: field, Reason: reason, Err: err}
}
