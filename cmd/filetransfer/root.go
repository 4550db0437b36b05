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
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filetransfer/cmd/filetransfer/commands"
	"github.com/walteh/filetransfer/cmd/filetransfer/opts"
	"github.com/walteh/filetransfer/pkg/log"
)

// newRootCmd builds the command tree around shared options
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "filetransfer",
		Short: "Copy filtered directory trees",
		Long: `filetransfer enumerates files under a directory tree with extension
filters and copies the selected files to another tree, keeping their
relative paths.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(cmd.ErrOrStderr(), rootOpts.Debug)

			var console io.Writer = cmd.ErrOrStderr()
			if rootOpts.Quiet {
				console = io.Discard
			}
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(log.NewContext(ctx, log.New(console, logger)))
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewListCmd(rootOpts),
		commands.NewCopyCmd(rootOpts),
		commands.NewRunCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Quiet, "quiet", "q", false, "suppress console output")
}

// setupLogging builds the zerolog logger; a terminal gets the console
// writer, anything else gets JSON lines
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
