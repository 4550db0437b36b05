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

package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/filetransfer/cmd/filetransfer/opts"
	"github.com/walteh/filetransfer/pkg/enumerate"
	"github.com/walteh/filetransfer/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		filters filterFlags
		paths   bool
	)

	cmd := &cobra.Command{
		Use:   "list ROOT",
		Short: "List the files under a directory that pass the filters",
		Long: `List walks ROOT recursively and prints every file whose extension passes
the include and exclude filters. An extension is the text after the last "."
of a filename and is matched exactly, so "TXT" and "txt" differ.`,
		Example: `  filetransfer list ./assets --include png,jpg
  filetransfer list . --exclude tmp --ignore '**/node_modules/**' --paths`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			result, err := enumerate.Files(ctx, args[0], filters.filter())
			if err != nil {
				return errors.Errorf("listing files: %w", err)
			}

			out := cmd.OutOrStdout()
			if paths {
				for _, path := range result.Paths {
					fmt.Fprintln(out, path)
				}
				return nil
			}

			data := pterm.TableData{{"NAME", "PATH"}}
			for _, entry := range result.Entries() {
				data = append(data, []string{entry.Name, entry.Relative})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}
			fmt.Fprintln(out, table)

			log.FromContext(cmd.Context()).Infof("%d files under %s", result.Len(), args[0])
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVarP(&paths, "paths", "p", false, "print full paths only, one per line")

	return cmd
}
