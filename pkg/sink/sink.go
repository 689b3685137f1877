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

package sink

import (
	"fmt"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 💾 Sink is the destination of an encoded output record. Write is called once
// per invocation with the complete payload and releases any handle it opened.
type Sink interface {
	Name() string
	Write(payload []byte) error
}

// ❌ WriteError wraps the I/O failure of a sink.
type WriteError struct {
	Sink string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing output to %s: %v", e.Sink, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// 🏭 New picks the sink for an output path. An empty path or "-" selects the
// given stdout writer.
func New(path string, stdout io.Writer) Sink {
	if path == "" || path == "-" {
		return &Stream{name: "stdout", w: stdout}
	}
	return &File{Path: path, Perm: 0o644}
}

// 📺 Stream writes to an already open writer it does not own.
type Stream struct {
	name string
	w    io.Writer
}

// NewStream wraps w under the given name.
func NewStream(name string, w io.Writer) *Stream {
	return &Stream{name: name, w: w}
}

func (s *Stream) Name() string { return s.name }

func (s *Stream) Write(payload []byte) error {
	if s.w == nil {
		return &WriteError{Sink: s.name, Err: errors.New("no writer")}
	}
	if _, err := s.w.Write(payload); err != nil {
		return &WriteError{Sink: s.name, Err: err}
	}
	return nil
}

// 📄 File writes the payload to a path, truncating whatever is there. The path
// is opened the way a shell redirect would, so symlinks, /dev/stdout and
// /dev/fd/N all reach their targets. Callers encode before writing so a fatal
// path never leaves half a document behind.
type File struct {
	Path string
	Perm os.FileMode
}

func (f *File) Name() string { return f.Path }

func (f *File) Write(payload []byte) error {
	if err := f.write(payload); err != nil {
		return &WriteError{Sink: f.Path, Err: err}
	}
	return nil
}

func (f *File) write(payload []byte) error {
	fh, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Perm)
	if err != nil {
		return errors.Errorf("opening output: %w", err)
	}
	if _, err := fh.Write(payload); err != nil {
		_ = fh.Close()
		return errors.Errorf("writing output: %w", err)
	}
	if err := fh.Close(); err != nil {
		return errors.Errorf("closing output: %w", err)
	}
	return nil
}
