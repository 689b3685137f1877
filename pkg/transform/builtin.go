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

package transform

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/opstep/pkg/operation"
	"github.com/walteh/opstep/pkg/record"
	"github.com/walteh/opstep/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// PathKey is the data_map entry the replace built-in matches rule globs against.
const PathKey = "path"

// DefaultFailMessage is reported by the fail built-in when none is configured.
const DefaultFailMessage = "operation failed"

func builtins() []Builtin {
	return []Builtin{
		{
			Name:        "identity",
			Description: "copies the document through unchanged",
			Build: func(Settings) (operation.Options, error) {
				return mapContent(func(s string) string { return s }), nil
			},
		},
		{
			Name:        "uppercase",
			Description: "upper-cases the whole document",
			Build: func(Settings) (operation.Options, error) {
				return mapContent(strings.ToUpper), nil
			},
		},
		{
			Name:        "lowercase",
			Description: "lower-cases the whole document",
			Build: func(Settings) (operation.Options, error) {
				return mapContent(strings.ToLower), nil
			},
		},
		{
			Name:        "replace",
			Description: "applies the configured replacements after the cursor",
			Build:       buildReplace,
		},
		{
			Name:        "fail",
			Description: "reports a failure through error_message",
			Build:       buildFail,
		},
		{
			Name:        "placeholder",
			Description: "no transform configured; strict mode rejects it at startup",
			Build: func(Settings) (operation.Options, error) {
				return operation.Options{}, nil
			},
		},
	}
}

// mapContent applies fn to the whole document for both shapes.
func mapContent(fn func(string) string) operation.Options {
	return operation.Options{
		Indexed: func(_ context.Context, in *record.IndexedInput, work *record.IndexedOutput) error {
			work.NewContent = fn(in.FullContent)
			return nil
		},
		Remaining: func(_ context.Context, in *record.RemainingInput, work *record.RemainingOutput) error {
			work.FullContent = fn(in.FullContent)
			return nil
		},
	}
}

func buildReplace(settings Settings) (operation.Options, error) {
	replacer := text.NewSimpleTextReplacer()
	if len(settings.Replacements) == 0 {
		return operation.Options{}, errors.Errorf("no replacements configured")
	}
	if err := replacer.ValidateRules(settings.Replacements); err != nil {
		return operation.Options{}, errors.Errorf("validating replacements: %w", err)
	}
	rules := settings.Replacements

	return operation.Options{
		Indexed: func(ctx context.Context, in *record.IndexedInput, work *record.IndexedOutput) error {
			head, tail := splitAt(in.FullContent, in.ContentIndex)
			result, err := replacer.ReplaceText(ctx, in.DataMap[PathKey], tail, rules)
			if err != nil {
				return err
			}
			work.NewContent = head + result.ModifiedContent
			work.ContentIndex = utf8.RuneCountInString(work.NewContent)
			zerolog.Ctx(ctx).Debug().Int("replacements", result.ReplacementCount).Int("skipped_rules", result.SkippedRules).Msg("replaced after cursor")
			return nil
		},
		Remaining: func(ctx context.Context, in *record.RemainingInput, work *record.RemainingOutput) error {
			result, err := replacer.ReplaceText(ctx, in.DataMap[PathKey], in.FullContent, rules)
			if err != nil {
				return err
			}
			work.FullContent = result.ModifiedContent
			zerolog.Ctx(ctx).Debug().Int("replacements", result.ReplacementCount).Int("skipped_rules", result.SkippedRules).Msg("replaced document")
			return nil
		},
	}, nil
}

func buildFail(settings Settings) (operation.Options, error) {
	msg := settings.FailMessage
	if msg == "" {
		msg = DefaultFailMessage
	}
	return operation.Options{
		Indexed: func(_ context.Context, in *record.IndexedInput, work *record.IndexedOutput) error {
			work.NewContent = in.FullContent
			work.ErrorMessage = msg
			return nil
		},
		// the remaining shape has no error_message, so the failure is fatal
		Remaining: func(context.Context, *record.RemainingInput, *record.RemainingOutput) error {
			return errors.New(msg)
		},
	}, nil
}

// splitAt splits s at a character offset, clamping offsets past the end.
func splitAt(s string, index int) (string, string) {
	if index <= 0 {
		return "", s
	}
	n := 0
	for i := range s {
		if n == index {
			return s[:i], s[i:]
		}
		n++
	}
	return s, ""
}
