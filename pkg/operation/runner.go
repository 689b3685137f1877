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

package operation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/opstep/pkg/record"
	"github.com/walteh/opstep/pkg/sink"
	"gitlab.com/tozd/go/errors"
)

// 📈 Observer is told about every finished invocation.
type Observer interface {
	Observe(shape record.Shape, result string, elapsed time.Duration)
}

// Invocation results reported to an Observer.
const (
	ResultOK            = "ok"
	ResultReportedError = "reported_error"
	ResultMalformed     = "malformed_input"
	ResultUnimplemented = "unimplemented"
	ResultFailed        = "failed"
)

// 🏃 Runner is the invocation adapter: it decodes the payload, runs the
// operation once, encodes the result and hands it to the sink.
type Runner struct {
	op       *Operation
	sink     sink.Sink
	indent   bool
	observer Observer
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Operation *Operation
	Sink      sink.Sink
	// Indent pretty-prints the output record
	Indent   bool
	Observer Observer
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Operation == nil {
		return nil, errors.Errorf("operation is required")
	}
	if opts.Sink == nil {
		return nil, errors.Errorf("sink is required")
	}
	return &Runner{
		op:       opts.Operation,
		sink:     opts.Sink,
		indent:   opts.Indent,
		observer: opts.Observer,
	}, nil
}

// 🏃 Run takes the process arguments; argv[1] must be the JSON payload and
// nothing may follow it.
func (r *Runner) Run(ctx context.Context, argv []string) (record.Output, error) {
	if len(argv) != 2 {
		err := &record.MalformedInputError{Reason: "expected exactly one JSON argument"}
		r.observe(record.ShapeUnknown, ResultMalformed, 0)
		return record.Output{}, errors.WithStack(err)
	}
	return r.Invoke(ctx, []byte(argv[1]))
}

// 🎯 Invoke runs a single exchange for an already extracted payload. Nothing
// reaches the sink unless the output was fully encoded.
func (r *Runner) Invoke(ctx context.Context, payload []byte) (record.Output, error) {
	start := time.Now()

	logger := zerolog.Ctx(ctx).With().
		Str("invocation_id", uuid.NewString()).
		Str("operation", r.op.Name()).
		Logger()
	ctx = logger.WithContext(ctx)

	in, err := record.DecodeInput(payload)
	if err != nil {
		r.observe(record.ShapeUnknown, ResultMalformed, time.Since(start))
		return record.Output{}, errors.Errorf("decoding input: %w", err)
	}

	logger = logger.With().Str("shape", string(in.Shape)).Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Int("payload_bytes", len(payload)).Msg("decoded input")

	out, err := r.op.Execute(ctx, in)
	if err != nil {
		var unimpl *UnimplementedOperationError
		if errors.As(err, &unimpl) {
			r.observe(in.Shape, ResultUnimplemented, time.Since(start))
		} else {
			r.observe(in.Shape, ResultFailed, time.Since(start))
		}
		return record.Output{}, err
	}

	encoded, err := record.Encode(out, r.indent)
	if err != nil {
		r.observe(in.Shape, ResultFailed, time.Since(start))
		return record.Output{}, errors.Errorf("encoding output: %w", err)
	}

	if err := r.sink.Write(encoded); err != nil {
		r.observe(in.Shape, ResultFailed, time.Since(start))
		return record.Output{}, errors.Errorf("writing output: %w", err)
	}

	result := ResultOK
	if msg := out.ErrorMessage(); msg != "" {
		result = ResultReportedError
		logger.Info().Str("error_message", msg).Msg("operation reported an error")
	}
	r.observe(in.Shape, result, time.Since(start))

	logger.Debug().Str("sink", r.sink.Name()).Int("output_bytes", len(encoded)).Msg("wrote output")
	return out, nil
}

func (r *Runner) observe(shape record.Shape, result string, elapsed time.Duration) {
	if r.observer != nil {
		r.observer.Observe(shape, result, elapsed)
	}
}
