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
	"maps"
)

// 🗺️ DataMap is opaque string state owned by the harness and the transformation.
// The adapter carries it through without looking at the values.
type DataMap map[string]string

// Clone returns a copy that is never nil.
func (m DataMap) Clone() DataMap {
	out := make(DataMap, len(m))
	maps.Copy(out, m)
	return out
}

// MarshalJSON writes a nil map as {} so outputs never carry null. Values are
// not HTML-escaped, matching the rest of the record.
func (m DataMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(m)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// 🏷️ Shape identifies which record layout an invocation uses.
type Shape string

const (
	ShapeUnknown   Shape = ""
	ShapeIndexed   Shape = "indexed"
	ShapeRemaining Shape = "remaining"
)

// ParseShape accepts the shape names used on the command line.
func ParseShape(s string) (Shape, bool) {
	switch s {
	case "indexed", "a", "A":
		return ShapeIndexed, true
	case "remaining", "b", "B":
		return ShapeRemaining, true
	}
	return ShapeUnknown, false
}

const (
	fieldDataMap          = "data_map"
	fieldFullContent      = "full_content"
	fieldContentIndex     = "content_index"
	fieldRemainingContent = "remaining_content"
	fieldNewContent       = "new_content"
	fieldErrorMessage     = "error_message"
)

// 📄 IndexedInput is the input of an operation working at a cursor position.
type IndexedInput struct {
	DataMap      DataMap `json:"data_map"`
	FullContent  string  `json:"full_content"`
	ContentIndex int     `json:"content_index"`
}

// IndexedOutput is the result of an indexed operation.
type IndexedOutput struct {
	DataMap      DataMap `json:"data_map"`
	ContentIndex int     `json:"content_index"`
	NewContent   string  `json:"new_content"`
	ErrorMessage string  `json:"error_message"`
}

// Seed builds the working record handed to a transformation: the data map is
// cloned, the cursor is carried over, new content and error are empty.
func (in IndexedInput) Seed() *IndexedOutput {
	return &IndexedOutput{
		DataMap:      in.DataMap.Clone(),
		ContentIndex: in.ContentIndex,
	}
}

// Failed reports whether the transformation set an error message.
func (out IndexedOutput) Failed() bool {
	return out.ErrorMessage != ""
}

// 📄 RemainingInput is the input of an operation threading the unprocessed suffix.
type RemainingInput struct {
	DataMap          DataMap `json:"data_map"`
	FullContent      string  `json:"full_content"`
	RemainingContent string  `json:"remaining_content"`
}

// RemainingOutput is the result of a remaining-content operation.
type RemainingOutput struct {
	DataMap     DataMap `json:"data_map"`
	FullContent string  `json:"full_content"`
}

// Seed builds the working record with the document unchanged.
func (in RemainingInput) Seed() *RemainingOutput {
	return &RemainingOutput{
		DataMap:     in.DataMap.Clone(),
		FullContent: in.FullContent,
	}
}

// 🎯 Input is a decoded invocation payload. Exactly one of Indexed and Remaining
// is set, matching Shape.
type Input struct {
	Shape     Shape
	Indexed   *IndexedInput
	Remaining *RemainingInput
}

// 🎯 Output is a transformation result. Exactly one of Indexed and Remaining is
// set, matching Shape.
type Output struct {
	Shape     Shape
	Indexed   *IndexedOutput
	Remaining *RemainingOutput
}

// ErrorMessage returns the transformation-reported failure, if the shape has one.
func (o Output) ErrorMessage() string {
	if o.Shape == ShapeIndexed && o.Indexed != nil {
		return o.Indexed.ErrorMessage
	}
	return ""
}

// DataMap returns the data map of whichever shape is set.
func (o Output) DataMap() DataMap {
	switch {
	case o.Indexed != nil:
		return o.Indexed.DataMap
	case o.Remaining != nil:
		return o.Remaining.DataMap
	}
	return nil
}
