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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/opstep/pkg/text"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			cfg:  Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOperation, cfg.Operation)
				assert.Equal(t, DefaultErrorExitCode, cfg.ErrorExitCode)
				assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
				assert.Equal(t, zerolog.WarnLevel, cfg.Level())
				assert.Equal(t, "stdout", cfg.OutputName())
				assert.Equal(t, "identity -> stdout", cfg.String())
			},
		},
		{
			name: "keeps_values",
			cfg:  Config{Operation: " uppercase ", ErrorExitCode: 9, LogLevel: "debug", OutputFile: "/tmp/out.json"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "uppercase", cfg.Operation)
				assert.Equal(t, 9, cfg.ErrorExitCode)
				assert.Equal(t, zerolog.DebugLevel, cfg.Level())
				assert.Equal(t, "uppercase -> /tmp/out.json", cfg.String())
			},
		},
		{
			name:        "reserved_exit_code",
			cfg:         Config{ErrorExitCode: 2},
			errContains: "error_exit_code must be between 4 and 125",
		},
		{
			name:        "exit_code_too_large",
			cfg:         Config{ErrorExitCode: 200},
			errContains: "error_exit_code",
		},
		{
			name:        "bad_log_level",
			cfg:         Config{LogLevel: "loud"},
			errContains: `invalid log_level "loud"`,
		},
		{
			name:        "bad_replacement",
			cfg:         Config{Replacements: []text.ReplacementRule{{ToText: "x"}}},
			errContains: "invalid replacements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, &cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	want := &Config{
		OutputFile:         "/tmp/out.json",
		Operation:          "replace",
		Strict:             true,
		FailOnErrorMessage: true,
		ErrorExitCode:      7,
		Indent:             true,
		LogLevel:           "debug",
		MetricsFile:        "/tmp/opstep.prom",
		Replacements: []text.ReplacementRule{
			{FromText: "foo", ToText: "bar"},
			{FromText: "baz", ToText: "qux", PathGlob: "**/*.go"},
		},
	}

	tests := []struct {
		name        string
		file        string
		content     string
		errContains string
	}{
		{
			name: "json",
			file: "opstep.json",
			content: `{
				"output_file": "/tmp/out.json",
				"operation": "replace",
				"strict": true,
				"fail_on_error_message": true,
				"error_exit_code": 7,
				"indent": true,
				"log_level": "debug",
				"metrics_file": "/tmp/opstep.prom",
				"replacements": [
					{"from": "foo", "to": "bar"},
					{"from": "baz", "to": "qux", "path_glob": "**/*.go"}
				]
			}`,
		},
		{
			name: "yaml",
			file: "opstep.yaml",
			content: `
output_file: /tmp/out.json
operation: replace
strict: true
fail_on_error_message: true
error_exit_code: 7
indent: true
log_level: debug
metrics_file: /tmp/opstep.prom
replacements:
  - from: foo
    to: bar
  - from: baz
    to: qux
    path_glob: "**/*.go"
`,
		},
		{
			name: "hcl",
			file: "opstep.hcl",
			content: `
output_file           = "/tmp/out.json"
operation             = "replace"
strict                = true
fail_on_error_message = true
error_exit_code       = 7
indent                = true
log_level             = "debug"
metrics_file          = "/tmp/opstep.prom"

replacement {
  from = "foo"
  to   = "bar"
}

replacement {
  from      = "baz"
  to        = "qux"
  path_glob = "**/*.go"
}
`,
		},
		{
			name:        "json_unknown_field",
			file:        "opstep.json",
			content:     `{"operation": "identity", "destination": "x"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "yaml_unknown_field",
			file:        "opstep.yml",
			content:     "operation: identity\ndestination: x\n",
			errContains: "parsing YAML",
		},
		{
			name:        "hcl_unknown_attribute",
			file:        "opstep.hcl",
			content:     `destination = "x"`,
			errContains: "decoding HCL",
		},
		{
			name:        "hcl_syntax",
			file:        "opstep.hcl",
			content:     `operation = `,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_extension",
			file:        "opstep.toml",
			content:     `operation = "identity"`,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := LoadFile(testContext(t), path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			cfg.location = ""
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadFileEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	cfg, err := LoadFile(testContext(t), path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultOperation, cfg.Operation)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(testContext(t), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &JSONParser{}, GetParser("a/b/opstep.json"))
	assert.IsType(t, &YAMLParser{}, GetParser("opstep.YAML"))
	assert.IsType(t, &YAMLParser{}, GetParser("opstep.yml"))
	assert.IsType(t, &HCLParser{}, GetParser("opstep.hcl"))
	assert.Nil(t, GetParser("opstep"))
}
