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

import "context"

// ReplacementRule defines a single text replacement
type ReplacementRule struct {
	// FromText is the text to replace
	FromText string `json:"from" yaml:"from" hcl:"from"`

	// ToText is the replacement text
	ToText string `json:"to" yaml:"to" hcl:"to,optional"`

	// PathGlob limits the rule to documents whose path matches; empty matches all
	PathGlob string `json:"path_glob,omitempty" yaml:"path_glob,omitempty" hcl:"path_glob,optional"`
}

// ReplacementResult contains the results of applying a rule set
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// SkippedRules counts rules whose glob did not match the path
	SkippedRules int

	OriginalContent string
	ModifiedContent string
}

// TextReplacer applies replacement rules to a document
type TextReplacer interface {
	// ReplaceText applies rules to content; path is matched against each rule's glob
	ReplaceText(ctx context.Context, path string, content string, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
