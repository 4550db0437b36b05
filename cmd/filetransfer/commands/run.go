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
	"github.com/walteh/filetransfer/pkg/config"
	"github.com/walteh/filetransfer/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		configFile string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "run [JOB...]",
		Short: "Run the transfers defined in a job file",
		Long: `Run loads a job file (YAML, HCL or JSON) and performs its transfers in
order, or only the named ones. It stops at the first failing transfer.

Relative paths in the job file are resolved against the file's directory.`,
		Example: `  filetransfer run
  filetransfer run --config backup.hcl photos docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx, configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			jobs, err := cfg.Select(args...)
			if err != nil {
				return errors.Errorf("selecting transfers: %w", err)
			}

			console := log.FromContext(ctx)
			console.Header(cfg.Location())
			for _, job := range jobs {
				if err := runTransfer(ctx, job.Name, job.Options(), dryRun); err != nil {
					return err
				}
				console.LogNewline()
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFile, "job file path")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the plans without copying")

	return cmd
}
