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
	"slices"
	"sort"
	"strings"
)

var (
	indexedInputFields    = []string{fieldDataMap, fieldFullContent, fieldContentIndex}
	remainingInputFields  = []string{fieldDataMap, fieldFullContent, fieldRemainingContent}
	indexedOutputFields   = []string{fieldDataMap, fieldContentIndex, fieldNewContent, fieldErrorMessage}
	remainingOutputFields = []string{fieldDataMap, fieldFullContent}
)

// 📥 DecodeInput strictly decodes an invocation payload. The shape is chosen by
// the presence of content_index (indexed) or remaining_content (remaining); the
// key set must then match that shape exactly.
func DecodeInput(data []byte) (Input, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return Input{}, err
	}

	_, hasIndex := fields[fieldContentIndex]
	_, hasRemaining := fields[fieldRemainingContent]
	switch {
	case hasIndex && hasRemaining:
		return Input{}, malformed("", "content_index and remaining_content cannot be combined", nil)
	case hasIndex:
		in, err := decodeIndexedInput(fields)
		if err != nil {
			return Input{}, err
		}
		return Input{Shape: ShapeIndexed, Indexed: in}, nil
	case hasRemaining:
		in, err := decodeRemainingInput(fields)
		if err != nil {
			return Input{}, err
		}
		return Input{Shape: ShapeRemaining, Remaining: in}, nil
	}

	// neither discriminator: report the first missing common field so the
	// message names something concrete
	for _, f := range []string{fieldDataMap, fieldFullContent} {
		if _, ok := fields[f]; !ok {
			return Input{}, malformed(f, "is required", nil)
		}
	}
	return Input{}, malformed(fieldContentIndex, "or \"remaining_content\" is required", nil)
}

func decodeIndexedInput(fields map[string]json.RawMessage) (*IndexedInput, error) {
	if err := checkFields(fields, indexedInputFields); err != nil {
		return nil, err
	}
	in := &IndexedInput{}
	var err error
	if in.DataMap, err = decodeDataMap(fields[fieldDataMap]); err != nil {
		return nil, err
	}
	if in.FullContent, err = decodeString(fieldFullContent, fields[fieldFullContent]); err != nil {
		return nil, err
	}
	if in.ContentIndex, err = decodeIndex(fields[fieldContentIndex]); err != nil {
		return nil, err
	}
	return in, nil
}

func decodeRemainingInput(fields map[string]json.RawMessage) (*RemainingInput, error) {
	if err := checkFields(fields, remainingInputFields); err != nil {
		return nil, err
	}
	in := &RemainingInput{}
	var err error
	if in.DataMap, err = decodeDataMap(fields[fieldDataMap]); err != nil {
		return nil, err
	}
	if in.FullContent, err = decodeString(fieldFullContent, fields[fieldFullContent]); err != nil {
		return nil, err
	}
	if in.RemainingContent, err = decodeString(fieldRemainingContent, fields[fieldRemainingContent]); err != nil {
		return nil, err
	}
	return in, nil
}

// 📤 DecodeOutput strictly decodes a result document written by an adapter.
// Harnesses use it to read error_message and the updated state.
func DecodeOutput(data []byte) (Output, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return Output{}, err
	}

	_, hasIndex := fields[fieldContentIndex]
	_, hasNew := fields[fieldNewContent]
	_, hasErr := fields[fieldErrorMessage]
	if hasIndex || hasNew || hasErr {
		if err := checkFields(fields, indexedOutputFields); err != nil {
			return Output{}, err
		}
		out := &IndexedOutput{}
		if out.DataMap, err = decodeDataMap(fields[fieldDataMap]); err != nil {
			return Output{}, err
		}
		if out.ContentIndex, err = decodeIndex(fields[fieldContentIndex]); err != nil {
			return Output{}, err
		}
		if out.NewContent, err = decodeString(fieldNewContent, fields[fieldNewContent]); err != nil {
			return Output{}, err
		}
		if out.ErrorMessage, err = decodeString(fieldErrorMessage, fields[fieldErrorMessage]); err != nil {
			return Output{}, err
		}
		return Output{Shape: ShapeIndexed, Indexed: out}, nil
	}

	if err := checkFields(fields, remainingOutputFields); err != nil {
		return Output{}, err
	}
	out := &RemainingOutput{}
	if out.DataMap, err = decodeDataMap(fields[fieldDataMap]); err != nil {
		return Output{}, err
	}
	if out.FullContent, err = decodeString(fieldFullContent, fields[fieldFullContent]); err != nil {
		return Output{}, err
	}
	return Output{Shape: ShapeRemaining, Remaining: out}, nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, malformed("", "payload is empty", nil)
	}
	if trimmed[0] != '{' {
		return nil, malformed("", "payload must be a JSON object", nil)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, malformed("", "payload is not valid JSON", err)
	}
	return fields, nil
}

// checkFields requires every field in want and rejects anything else.
func checkFields(fields map[string]json.RawMessage, want []string) error {
	for _, f := range want {
		if _, ok := fields[f]; !ok {
			return malformed(f, "is required", nil)
		}
	}
	var extra []string
	for k := range fields {
		if !slices.Contains(want, k) {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return malformed(extra[0], "is not allowed here (expected "+strings.Join(want, ", ")+")", nil)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeDataMap(raw json.RawMessage) (DataMap, error) {
	if isNull(raw) {
		return nil, malformed(fieldDataMap, "must be an object of strings, got null", nil)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, malformed(fieldDataMap, "must be an object of strings", err)
	}
	return DataMap(m), nil
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", malformed(field, "must be a string, got null", nil)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(field, "must be a string", err)
	}
	return s, nil
}

func decodeIndex(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, malformed(fieldContentIndex, "must be an integer, got null", nil)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, malformed(fieldContentIndex, "must be an integer", err)
	}
	if n < 0 {
		return 0, malformed(fieldContentIndex, "must not be negative", nil)
	}
	return n, nil
}
