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

package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTextReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCount    int
		wantSkipped  int
		wantError    string
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "multiple_replacements",
			content: "Hello World World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "rules_apply_in_order",
			content: "a",
			rules: []ReplacementRule{
				{FromText: "a", ToText: "b"},
				{FromText: "b", ToText: "c"},
			},
			want:         "c",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "Goodbye", ToText: "Hi"},
			},
			want: "Hello World",
		},
		{
			name:    "same_text_is_not_a_modification",
			content: "Hello",
			rules: []ReplacementRule{
				{FromText: "Hello", ToText: "Hello"},
			},
			want:      "Hello",
			wantCount: 1,
		},
		{
			name:    "empty_from_is_ignored",
			content: "Hello",
			rules: []ReplacementRule{
				{ToText: "x"},
			},
			want: "Hello",
		},
		{
			name:    "glob_match",
			path:    "src/pkg/main.go",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", PathGlob: "**/*.go"},
			},
			want:         "bar",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "glob_mismatch",
			path:    "README.md",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", PathGlob: "**/*.go"},
			},
			want:        "foo",
			wantSkipped: 1,
		},
		{
			name:    "scoped_rule_skips_unnamed_document",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", PathGlob: "*.txt"},
			},
			want:        "foo",
			wantSkipped: 1,
		},
		{
			name:    "bad_glob",
			path:    "a.go",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", PathGlob: "[a-"},
			},
			wantError: "rule 0",
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			rules:        []ReplacementRule{},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			result, err := replacer.ReplaceText(context.Background(), tt.path, tt.content, tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent)
			assert.Equal(t, tt.want, result.ModifiedContent)
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantSkipped, result.SkippedRules)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestSimpleTextReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", PathGlob: "**/*.txt"},
				{FromText: "baz"},
			},
		},
		{
			name: "missing_from",
			rules: []ReplacementRule{
				{ToText: "bar"},
			},
			wantError: "rule 0: from is required",
		},
		{
			name: "invalid_glob",
			rules: []ReplacementRule{
				{FromText: "foo"},
				{FromText: "foo", PathGlob: "[a-"},
			},
			wantError: "rule 1: invalid path_glob",
		},
		{
			name:  "empty_rules",
			rules: []ReplacementRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			err := replacer.ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}
