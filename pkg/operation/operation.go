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

	"github.com/rs/zerolog"
	"github.com/walteh/opstep/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Transform edits the working record seeded from in. Returning an error is
// fatal for the invocation; recoverable failures belong in the record itself
// (error_message for the indexed shape).
type Transform[In any, Out any] func(ctx context.Context, in *In, work *Out) error

// IndexedTransform works on a document at a cursor.
type IndexedTransform = Transform[record.IndexedInput, record.IndexedOutput]

// RemainingTransform works on a document and its unprocessed suffix.
type RemainingTransform = Transform[record.RemainingInput, record.RemainingOutput]

// 🔧 Options configures an operation. Neither transform has a default: an
// operation that leaves a shape unset fails with UnimplementedOperationError
// when asked to run it.
type Options struct {
	// Name is used in logs and errors
	Name string
	// Indexed handles inputs carrying content_index
	Indexed IndexedTransform
	// Remaining handles inputs carrying remaining_content
	Remaining RemainingTransform
	// Strict makes New fail when no transform is set at all
	Strict bool
}

// 🎮 Operation dispatches a decoded input to the transform for its shape.
type Operation struct {
	name      string
	indexed   IndexedTransform
	remaining RemainingTransform
}

// 🏭 New creates an operation with the given options
func New(opts Options) (*Operation, error) {
	name := opts.Name
	if name == "" {
		name = "operation"
	}
	if opts.Strict && opts.Indexed == nil && opts.Remaining == nil {
		return nil, errors.WithStack(&UnimplementedOperationError{Operation: name})
	}
	return &Operation{
		name:      name,
		indexed:   opts.Indexed,
		remaining: opts.Remaining,
	}, nil
}

// Name returns the operation name.
func (o *Operation) Name() string {
	return o.name
}

// Supports reports whether a transform is configured for the shape.
func (o *Operation) Supports(shape record.Shape) bool {
	switch shape {
	case record.ShapeIndexed:
		return o.indexed != nil
	case record.ShapeRemaining:
		return o.remaining != nil
	}
	return false
}

// 🏃 Execute runs the transform for the input's shape and returns the output
// in the same shape.
func (o *Operation) Execute(ctx context.Context, in record.Input) (record.Output, error) {
	logger := zerolog.Ctx(ctx)

	if !o.Supports(in.Shape) {
		return record.Output{}, errors.WithStack(&UnimplementedOperationError{Operation: o.name, Shape: in.Shape})
	}

	switch in.Shape {
	case record.ShapeIndexed:
		if in.Indexed == nil {
			return record.Output{}, errors.Errorf("indexed input has no record")
		}
		work := in.Indexed.Seed()
		logger.Debug().Int("content_index", in.Indexed.ContentIndex).Int("content_len", len(in.Indexed.FullContent)).Msg("running indexed transform")
		if err := o.indexed(ctx, in.Indexed, work); err != nil {
			return record.Output{}, o.wrap(in.Shape, err)
		}
		if work.DataMap == nil {
			work.DataMap = record.DataMap{}
		}
		return record.Output{Shape: record.ShapeIndexed, Indexed: work}, nil

	case record.ShapeRemaining:
		if in.Remaining == nil {
			return record.Output{}, errors.Errorf("remaining input has no record")
		}
		work := in.Remaining.Seed()
		logger.Debug().Int("remaining_len", len(in.Remaining.RemainingContent)).Int("content_len", len(in.Remaining.FullContent)).Msg("running remaining transform")
		if err := o.remaining(ctx, in.Remaining, work); err != nil {
			return record.Output{}, o.wrap(in.Shape, err)
		}
		if work.DataMap == nil {
			work.DataMap = record.DataMap{}
		}
		return record.Output{Shape: record.ShapeRemaining, Remaining: work}, nil
	}

	return record.Output{}, errors.Errorf("unknown input shape %q", in.Shape)
}

func (o *Operation) wrap(shape record.Shape, err error) error {
	if errors.Is(err, ErrNotImplemented) {
		return errors.WithStack(&UnimplementedOperationError{Operation: o.name, Shape: shape, Err: err})
	}
	return errors.Errorf("running %s transform of %s: %w", shape, o.name, err)
}
