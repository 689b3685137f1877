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

import (
	"bytes"
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// 📦 Encode serializes an output record. Field order follows the record
// definition, HTML characters are left alone, and no trailing newline is added.
func Encode(out Output, indent bool) ([]byte, error) {
	var v any
	switch out.Shape {
	case ShapeIndexed:
		if out.Indexed == nil || out.Remaining != nil {
			return nil, errors.Errorf("indexed output must carry only the indexed record")
		}
		v = out.Indexed
	case ShapeRemaining:
		if out.Remaining == nil || out.Indexed != nil {
			return nil, errors.Errorf("remaining output must carry only the remaining record")
		}
		v = out.Remaining
	default:
		return nil, errors.Errorf("unknown output shape %q", out.Shape)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, errors.Errorf("encoding %s output: %w", out.Shape, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
