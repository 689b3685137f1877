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

package operation

import (
	"fmt"

	"github.com/walteh/opstep/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// ErrNotImplemented is returned by placeholder transforms that still have to
// be written. The operation reports it as an UnimplementedOperationError.
var ErrNotImplemented = errors.Base("operation not implemented")

// ❌ UnimplementedOperationError means no transform exists for the requested
// shape, or the configured one is still a placeholder.
type UnimplementedOperationError struct {
	Operation string
	Shape     record.Shape
	Err       error
}

func (e *UnimplementedOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("operation not implemented: the %s transform of %s is a placeholder", e.Shape, e.Operation)
	}
	if e.Shape == record.ShapeUnknown {
		return fmt.Sprintf("operation not implemented: %s has no transform configured", e.Operation)
	}
	return fmt.Sprintf("operation not implemented: %s has no %s transform", e.Operation, e.Shape)
}

func (e *UnimplementedOperationError) Unwrap() error {
	return e.Err
}
