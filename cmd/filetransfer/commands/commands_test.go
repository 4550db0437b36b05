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

package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filetransfer/cmd/filetransfer/commands"
	"github.com/walteh/filetransfer/cmd/filetransfer/opts"
	"github.com/walteh/filetransfer/pkg/fault"
	"github.com/walteh/filetransfer/pkg/log"
)

// 🧪 execute runs a single command with args and returns stdout and console output
func execute(t *testing.T, newCmd func(*opts.RootOpts) *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	logger := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}
	ctx := log.NewContext(logger.WithContext(context.Background()), log.New(console, logger))

	stdout := &bytes.Buffer{}
	cmd := newCmd(&opts.RootOpts{})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), console.String(), err
}

func writeTree(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
	}
}

func TestListCmd(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "a/A.txt", "a/B.png", "b/C.bin")

	t.Run("table", func(t *testing.T) {
		stdout, console, err := execute(t, commands.NewListCmd, src, "--include", "txt,.png")
		require.NoError(t, err)
		assert.Contains(t, stdout, "NAME")
		assert.Contains(t, stdout, "A.txt")
		assert.Contains(t, stdout, "B.png")
		assert.NotContains(t, stdout, "C.bin")
		assert.Contains(t, console, "2 files under")
	})

	t.Run("paths", func(t *testing.T) {
		stdout, _, err := execute(t, commands.NewListCmd, src, "--paths", "--exclude", "png")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.ElementsMatch(t, []string{
			filepath.Join(src, "a", "A.txt"),
			filepath.Join(src, "b", "C.bin"),
		}, lines)
	})

	t.Run("missing_root", func(t *testing.T) {
		_, _, err := execute(t, commands.NewListCmd, filepath.Join(src, "missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrIO)
	})

	t.Run("needs_root", func(t *testing.T) {
		_, _, err := execute(t, commands.NewListCmd)
		require.Error(t, err)
	})
}

func TestCopyCmd(t *testing.T) {
	t.Run("copies", func(t *testing.T) {
		src, dst := t.TempDir(), filepath.Join(t.TempDir(), "out")
		writeTree(t, src, "a/A.txt", "a/B.png", "b/C.bin")

		_, console, err := execute(t, commands.NewCopyCmd, src, dst, "-i", "txt", "-i", "bin")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dst, "a", "A.txt"))
		assert.FileExists(t, filepath.Join(dst, "b", "C.bin"))
		assert.NoFileExists(t, filepath.Join(dst, "a", "B.png"))
		assert.Contains(t, console, "copied 2 files")
	})

	t.Run("dry_run", func(t *testing.T) {
		src, dst := t.TempDir(), filepath.Join(t.TempDir(), "out")
		writeTree(t, src, "a/A.txt")

		_, console, err := execute(t, commands.NewCopyCmd, src, dst, "--dry-run")
		require.NoError(t, err)
		assert.NoDirExists(t, dst)
		assert.Contains(t, console, "[planning")
		assert.Contains(t, console, "1 files would be copied")
	})

	t.Run("conflict", func(t *testing.T) {
		src, dst := t.TempDir(), t.TempDir()
		writeTree(t, src, "a/A.txt", "a/B.png")
		writeTree(t, dst, "a/A.txt")

		_, console, err := execute(t, commands.NewCopyCmd, src, dst)
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrDestinationExists)
		assert.Contains(t, console, "✗ "+filepath.Join("a", "A.txt"))
		assert.NoFileExists(t, filepath.Join(dst, "a", "B.png"))
		assert.NotContains(t, console, "❌", "a conflict is a warning, not a failure")
	})

	t.Run("copy_failure", func(t *testing.T) {
		src, dst := t.TempDir(), t.TempDir()
		writeTree(t, src, "a/A.txt")
		require.NoError(t, os.MkdirAll(filepath.Join(dst, "a", "A.txt"), 0o755))

		_, console, err := execute(t, commands.NewCopyCmd, src, dst, "--overwrite")
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrIO)
		assert.Contains(t, console, "❌ copy stopped after a partial copy")
		assert.NotContains(t, console, "copied")
	})

	t.Run("overwrite", func(t *testing.T) {
		src, dst := t.TempDir(), t.TempDir()
		writeTree(t, src, "a/A.txt")
		require.NoError(t, os.MkdirAll(filepath.Join(dst, "a"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dst, "a", "A.txt"), []byte("old"), 0o644))

		_, _, err := execute(t, commands.NewCopyCmd, src, dst, "--overwrite")
		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dst, "a", "A.txt"))
		require.NoError(t, err)
		assert.Equal(t, "a/A.txt", string(content))
	})

	t.Run("invalid_filter", func(t *testing.T) {
		src, dst := t.TempDir(), t.TempDir()
		_, _, err := execute(t, commands.NewCopyCmd, src, dst, "--ignore", "[bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	})
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "src/docs/readme.md", "src/docs/notes.txt", "src/img/logo.png")

	configPath := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
transfers:
  - name: docs
    source: src
    destination: out/docs
    include: [md]
  - name: images
    source: src
    destination: out/images
    include: [.png]
`), 0o644))

	t.Run("all_jobs", func(t *testing.T) {
		_, console, err := execute(t, commands.NewRunCmd, "--config", configPath)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "out", "docs", "docs", "readme.md"))
		assert.NoFileExists(t, filepath.Join(dir, "out", "docs", "docs", "notes.txt"))
		assert.FileExists(t, filepath.Join(dir, "out", "images", "img", "logo.png"))
		assert.Contains(t, console, "◆ docs")
		assert.Contains(t, console, "◆ images")
	})

	t.Run("second_run_conflicts", func(t *testing.T) {
		_, _, err := execute(t, commands.NewRunCmd, "--config", configPath, "docs")
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrDestinationExists)
	})

	t.Run("unknown_job", func(t *testing.T) {
		_, _, err := execute(t, commands.NewRunCmd, "--config", configPath, "videos")
		require.Error(t, err)
		assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	})

	t.Run("missing_config", func(t *testing.T) {
		_, _, err := execute(t, commands.NewRunCmd, "--config", filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})
}
