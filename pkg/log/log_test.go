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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"⚠️  warning test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("scaffolding operation")
			},
			wantLogs: []string{
				"opstep • scaffolding operation",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerMirrorsToZerolog(t *testing.T) {
	zbuf := &bytes.Buffer{}
	logger := New(&bytes.Buffer{}, zerolog.New(zbuf))

	logger.Warning("careful")
	logger.LogInvocation(context.Background(), Invocation{Operation: "identity", Shape: "indexed", Result: "ok", Sink: "stdout", Elapsed: time.Millisecond})

	out := zbuf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"message":"careful"`)
	assert.Contains(t, out, `"operation":"identity"`)
	assert.Contains(t, out, `"result":"ok"`)
}

func TestLoggerContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.NotPanics(t, func() {
		FromContext(context.Background()).Error("dropped")
	}, "a missing logger should fall back to a discarding one")
}

func TestInvocationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		inv  Invocation
		want string
	}{
		{
			name: "ok",
			inv:  Invocation{Operation: "identity", Shape: "indexed", Result: "ok", Sink: "stdout"},
			want: "✓ identity             indexed    ok               → stdout",
		},
		{
			name: "reported_error",
			inv:  Invocation{Operation: "fail", Shape: "indexed", Result: "reported_error", Sink: "/tmp/out.json"},
			want: "! fail                 indexed    reported_error   → /tmp/out.json",
		},
		{
			name: "malformed",
			inv:  Invocation{Operation: "replace", Shape: "unknown", Result: "malformed_input", Sink: "stdout"},
			want: "✗ replace              unknown    malformed_input  → stdout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogInvocation(context.Background(), tt.inv)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()), "formatted output should match")
		})
	}
}
