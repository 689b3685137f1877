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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/opstep/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// newListCmd creates the list command
func newListCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"OPERATION", "DESCRIPTION"}}
			for _, b := range transform.Default().All() {
				data = append(data, []string{b.Name, b.Description})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}
			fmt.Fprintln(o.stdout, table)
			return nil
		},
	}
}
