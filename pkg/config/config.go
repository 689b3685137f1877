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
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/opstep/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Defaults applied by Validate.
const (
	DefaultOperation     = "identity"
	DefaultErrorExitCode = 4
	DefaultLogLevel      = "warn"
)

// exit codes below this are reserved for the process itself
const minErrorExitCode = 4

// 📚 Config represents the complete configuration
type Config struct {
	// OutputFile is where the output record goes; empty means stdout
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty" hcl:"output_file,optional"`
	// Operation names the built-in to run
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty" hcl:"operation,optional"`
	// Strict refuses to start an operation with no transform
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`
	// FailOnErrorMessage exits with ErrorExitCode after writing an output whose error_message is set
	FailOnErrorMessage bool `json:"fail_on_error_message,omitempty" yaml:"fail_on_error_message,omitempty" hcl:"fail_on_error_message,optional"`
	ErrorExitCode      int  `json:"error_exit_code,omitempty" yaml:"error_exit_code,omitempty" hcl:"error_exit_code,optional"`
	// Indent pretty-prints the output record
	Indent      bool   `json:"indent,omitempty" yaml:"indent,omitempty" hcl:"indent,optional"`
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty" hcl:"log_level,optional"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" hcl:"metrics_file,optional"`
	// FailMessage is reported by the fail operation
	FailMessage  string                 `json:"fail_message,omitempty" yaml:"fail_message,omitempty" hcl:"fail_message,optional"`
	Replacements []text.ReplacementRule `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacement,block"`

	location string
}

// Location returns the file the config was read from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	cfg.Operation = strings.TrimSpace(cfg.Operation)
	if cfg.Operation == "" {
		cfg.Operation = DefaultOperation
	}

	if cfg.ErrorExitCode == 0 {
		cfg.ErrorExitCode = DefaultErrorExitCode
	}
	if cfg.ErrorExitCode < minErrorExitCode || cfg.ErrorExitCode > 125 {
		return errors.Errorf("error_exit_code must be between %d and 125, got %d", minErrorExitCode, cfg.ErrorExitCode)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.Replacements); err != nil {
		return errors.Errorf("invalid replacements: %w", err)
	}

	return nil
}

// Level returns the parsed log level, falling back to the default.
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// OutputName describes the output destination for logs.
func (cfg *Config) OutputName() string {
	if cfg.OutputFile == "" {
		return "stdout"
	}
	return cfg.OutputFile
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s", cfg.Operation, cfg.OutputName())
}
