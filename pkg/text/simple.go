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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using plain string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText. Rules run in order, each
// one seeing the output of the previous.
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, path string, content string, rules []ReplacementRule) (*ReplacementResult, error) {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for i, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		ok, err := matchPath(rule.PathGlob, path)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		if !ok {
			result.SkippedRules++
			zerolog.Ctx(ctx).Debug().Int("rule", i).Str("path", path).Str("glob", rule.PathGlob).Msg("rule skipped")
			continue
		}

		count := strings.Count(current, rule.FromText)
		if count == 0 {
			continue
		}

		current = strings.ReplaceAll(current, rule.FromText, rule.ToText)
		result.ReplacementCount += count
		result.WasModified = result.WasModified || current != content
	}

	result.ModifiedContent = current
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from is required", i)
		}
		if rule.PathGlob != "" && !doublestar.ValidatePattern(rule.PathGlob) {
			return errors.Errorf("rule %d: invalid path_glob %q", i, rule.PathGlob)
		}
	}
	return nil
}

// matchPath reports whether a rule scoped by glob applies to path. An empty
// glob applies everywhere; a scoped rule never applies to an unnamed document.
func matchPath(glob, path string) (bool, error) {
	if glob == "" {
		return true, nil
	}
	if path == "" {
		return false, nil
	}
	ok, err := doublestar.Match(glob, path)
	if err != nil {
		return false, errors.Errorf("matching path_glob %q: %w", glob, err)
	}
	return ok, nil
}
