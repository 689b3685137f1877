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

package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/opstep/pkg/config"
	"github.com/walteh/opstep/pkg/log"
	"github.com/walteh/opstep/pkg/metrics"
	"github.com/walteh/opstep/pkg/operation"
	"github.com/walteh/opstep/pkg/sink"
	"github.com/walteh/opstep/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags and writers shared by all commands
type rootOpts struct {
	stdout io.Writer
	stderr io.Writer

	configFile         string
	debug              bool
	outputFile         string
	operation          string
	strict             bool
	indent             bool
	failOnErrorMessage bool
	metricsFile        string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOpts{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "opstep '<json payload>'",
		Short: "Run one transformation step over a JSON record",
		Long: `opstep reads a single JSON record from its first argument, runs the
configured operation over it and writes the resulting record to OUTPUT_FILE,
or to stdout when OUTPUT_FILE is unset.

Indexed records carry data_map, full_content and content_index and produce
data_map, content_index, new_content and error_message. Remaining records
carry data_map, full_content and remaining_content and produce data_map and
full_content.`,
		Example: `  opstep '{"data_map": {}, "full_content": "hello world", "content_index": 5}'
  OUTPUT_FILE=out.json opstep --op uppercase '{"data_map": {}, "full_content": "ab", "remaining_content": "b"}'`,
		// the runner checks the argument count so it is reported as malformed input
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runInvoke(cmd, args)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	addRootFlags(cmd, o)

	cmd.AddCommand(
		newListCmd(o),
		newScaffoldCmd(o),
		newVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "config file path (.json, .yaml, .yml or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")

	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "write the output record to this file instead of stdout")
	cmd.Flags().StringVar(&o.operation, "op", "", "built-in operation to run (see 'opstep list')")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "refuse to run an operation without a transform")
	cmd.Flags().BoolVar(&o.indent, "indent", false, "pretty-print the output record")
	cmd.Flags().BoolVar(&o.failOnErrorMessage, "fail-on-error-message", false, "exit non-zero after writing an output whose error_message is set")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write prometheus metrics to this file")
}

// loadConfig merges file, environment and flags, in that order
func (o *rootOpts) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFile = o.outputFile
	}
	if flags.Changed("op") {
		cfg.Operation = o.operation
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if flags.Changed("indent") {
		cfg.Indent = o.indent
	}
	if flags.Changed("fail-on-error-message") {
		cfg.FailOnErrorMessage = o.failOnErrorMessage
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if o.debug {
		cfg.LogLevel = zerolog.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// level is the log level before any config is read
func (o *rootOpts) level() zerolog.Level {
	if o.debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// setupLogging returns a context carrying a stderr logger and console reporter.
// The reporter only mirrors into the structured log at debug level so a
// warning is printed once.
func (o *rootOpts) setupLogging(ctx context.Context, level zerolog.Level) context.Context {
	logger := zerolog.New(o.stderr).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)
	mirror := zerolog.Nop()
	if level <= zerolog.DebugLevel {
		mirror = logger
	}
	return log.NewContext(ctx, log.New(o.stderr, mirror))
}

func (o *rootOpts) runInvoke(cmd *cobra.Command, args []string) error {
	ctx := o.setupLogging(cmd.Context(), o.level())

	cfg, err := o.loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	ctx = o.setupLogging(cmd.Context(), cfg.Level())
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", cfg.String()).Str("config_file", cfg.Location()).Msg("configuration ready")

	op, err := transform.Default().NewOperation(cfg.Operation, transform.Settings{
		Replacements: cfg.Replacements,
		FailMessage:  cfg.FailMessage,
	}, cfg.Strict)
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	var observer operation.Observer
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.New(cfg.Operation)
		observer = recorder
	}

	runner, err := operation.NewRunner(operation.RunnerOptions{
		Operation: op,
		Sink:      sink.New(cfg.OutputFile, o.stdout),
		Indent:    cfg.Indent,
		Observer:  observer,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	start := time.Now()
	out, runErr := runner.Run(ctx, append([]string{cmd.Root().Name()}, args...))

	if recorder != nil {
		if err := recorder.WriteFile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("metrics not written")
		}
	}

	if runErr != nil {
		return runErr
	}

	result := operation.ResultOK
	if out.ErrorMessage() != "" {
		result = operation.ResultReportedError
	}
	if cfg.Level() <= zerolog.DebugLevel {
		log.FromContext(ctx).LogInvocation(ctx, log.Invocation{
			Operation: op.Name(),
			Shape:     string(out.Shape),
			Result:    result,
			Sink:      cfg.OutputName(),
			Elapsed:   time.Since(start),
		})
	}

	if msg := out.ErrorMessage(); msg != "" {
		if cfg.FailOnErrorMessage {
			return &exitError{
				code: cfg.ErrorExitCode,
				err:  errors.Errorf("operation reported an error: %s", msg),
			}
		}
		log.FromContext(ctx).Warningf("operation reported an error: %s", msg)
	}

	return nil
}
