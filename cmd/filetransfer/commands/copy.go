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
	"github.com/spf13/cobra"
	"github.com/walteh/filetransfer/cmd/filetransfer/opts"
	"github.com/walteh/filetransfer/pkg/transfer"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		filters   filterFlags
		overwrite bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "copy SRC DST",
		Short: "Copy the filtered files under SRC into DST",
		Long: `Copy enumerates SRC with the given filters and copies every selected file
to the same relative path under DST, creating directories as needed.

Unless --overwrite is given, nothing is copied when any destination file
already exists. Copies are content only and are not rolled back on failure.`,
		Example: `  filetransfer copy ./photos /mnt/backup/photos --include jpg,png
  filetransfer copy ./src ./out --exclude o --overwrite
  filetransfer copy ./src ./out --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd.Context(), "copy", transfer.Options{
				Source:      args[0],
				Destination: args[1],
				Filter:      filters.filter(),
				Overwrite:   overwrite,
			}, dryRun)
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace destination files that already exist")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the plan without copying")

	return cmd
}
