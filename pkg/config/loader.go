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
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix marks environment variables read into the config.
const EnvPrefix = "OPSTEP_"

// OutputFileEnv is the unprefixed variable naming the output file. The
// prefixed OPSTEP_OUTPUT_FILE wins when both are set.
const OutputFileEnv = "OUTPUT_FILE"

// keys understood from the environment, after stripping EnvPrefix
const (
	keyConfig             = "config"
	keyOutputFile         = "output_file"
	keyOperation          = "operation"
	keyStrict             = "strict"
	keyFailOnErrorMessage = "fail_on_error_message"
	keyErrorExitCode      = "error_exit_code"
	keyIndent             = "indent"
	keyLogLevel           = "log_level"
	keyMetricsFile        = "metrics_file"
	keyFailMessage        = "fail_message"

	// OUTPUT_FILE lands here so it cannot collide with OPSTEP_OUTPUT_FILE
	keyBareOutputFile = "bare_output_file"
)

// 🎯 Load builds the configuration from an optional file and the
// environment. path is the explicit --config value; when empty,
// OPSTEP_CONFIG is consulted and no file at all is fine. Flags are applied
// by the caller, followed by Validate.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	if path == "" {
		path = k.String(keyConfig)
	}

	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := applyEnv(k, cfg); err != nil {
		return nil, err
	}

	logger.Debug().Str("config_file", cfg.location).Strs("env_keys", k.Keys()).Msg("configuration loaded")
	return cfg, nil
}

// envKey maps an environment variable name to a config key; an empty result
// drops the variable.
func envKey(name string) string {
	if name == OutputFileEnv {
		return keyBareOutputFile
	}
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

func applyEnv(k *koanf.Koanf, cfg *Config) error {
	if k.Exists(keyBareOutputFile) {
		cfg.OutputFile = k.String(keyBareOutputFile)
	}

	strs := map[string]*string{
		keyOutputFile:  &cfg.OutputFile,
		keyOperation:   &cfg.Operation,
		keyLogLevel:    &cfg.LogLevel,
		keyMetricsFile: &cfg.MetricsFile,
		keyFailMessage: &cfg.FailMessage,
	}
	for key, dst := range strs {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}

	bools := map[string]*bool{
		keyStrict:             &cfg.Strict,
		keyFailOnErrorMessage: &cfg.FailOnErrorMessage,
		keyIndent:             &cfg.Indent,
	}
	for key, dst := range bools {
		if !k.Exists(key) {
			continue
		}
		v, err := strconv.ParseBool(strings.TrimSpace(k.String(key)))
		if err != nil {
			return errors.Errorf("parsing %s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
		*dst = v
	}

	if k.Exists(keyErrorExitCode) {
		v, err := strconv.Atoi(strings.TrimSpace(k.String(keyErrorExitCode)))
		if err != nil {
			return errors.Errorf("parsing %s%s: %w", EnvPrefix, strings.ToUpper(keyErrorExitCode), err)
		}
		cfg.ErrorExitCode = v
	}

	return nil
}
