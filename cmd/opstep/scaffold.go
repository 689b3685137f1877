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
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/walteh/opstep/pkg/log"
	"github.com/walteh/opstep/pkg/record"
	"gitlab.com/tozd/go/errors"
)

//go:embed templates/operation.go.tmpl
var templatesFS embed.FS

var operationTemplate = template.Must(template.ParseFS(templatesFS, "templates/operation.go.tmpl"))

var operationNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// scaffoldData is the input of the operation template
type scaffoldData struct {
	Name  string
	Func  string
	Shape record.Shape
}

func newScaffoldCmd(o *rootOpts) *cobra.Command {
	var (
		shapeName string
		name      string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate a Go main package for a new operation",
		Long: `Scaffold prints a Go program that runs a placeholder operation through
the adapter. Until the transform is written the program exits as
unimplemented.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, ok := record.ParseShape(shapeName)
			if !ok {
				return &usageError{err: errors.Errorf("unknown shape %q (want indexed or remaining)", shapeName)}
			}

			src, err := renderScaffold(name, shape)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := o.stdout.Write(src)
				return errors.WithStack(err)
			}
			ctx := o.setupLogging(cmd.Context(), o.level())
			reporter := log.FromContext(ctx)
			reporter.Header(fmt.Sprintf("scaffolding %s operation %q", shape, name))
			if err := os.WriteFile(outPath, src, 0o644); err != nil {
				return errors.Errorf("writing scaffold: %w", err)
			}
			reporter.Successf("wrote %s operation %q to %s", shape, name, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&shapeName, "shape", string(record.ShapeIndexed), "record shape: indexed or remaining")
	cmd.Flags().StringVar(&name, "name", "operation", "operation name")
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")
	return cmd
}

// renderScaffold renders and gofmts the operation template
func renderScaffold(name string, shape record.Shape) ([]byte, error) {
	if !operationNamePattern.MatchString(name) {
		return nil, &usageError{err: errors.Errorf("invalid operation name %q", name)}
	}

	fn := funcName(name)
	if token.IsKeyword(fn) || fn == "main" || fn == "init" {
		return nil, &usageError{err: errors.Errorf("operation name %q is reserved", name)}
	}

	var buf bytes.Buffer
	err := operationTemplate.Execute(&buf, scaffoldData{
		Name:  name,
		Func:  fn,
		Shape: shape,
	})
	if err != nil {
		return nil, errors.Errorf("rendering scaffold: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Errorf("formatting scaffold: %w", err)
	}
	return src, nil
}

// funcName turns an operation name into a Go identifier, my-op becoming myOp
func funcName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	fn := strings.Join(parts, "")
	return strings.ToLower(fn[:1]) + fn[1:]
}
