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

// Package enumerate walks a directory tree and collects the files that pass
// an extension filter.
package enumerate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/walteh/filetransfer/pkg/extension"
	"github.com/walteh/filetransfer/pkg/fault"
)

// 📄 Entry is one accepted file
type Entry struct {
	Name     string // base name
	Path     string // root joined with Relative
	Relative string // path relative to the walk root
}

// 📦 Result holds accepted files as positionally aligned slices in walk order
type Result struct {
	Filenames []string
	Paths     []string
	Relative  []string
}

// Len returns the number of accepted files.
func (r *Result) Len() int {
	return len(r.Paths)
}

// Entries returns the result as a slice of Entry values.
func (r *Result) Entries() []Entry {
	entries := make([]Entry, len(r.Paths))
	for i := range r.Paths {
		entries[i] = Entry{
			Name:     r.Filenames[i],
			Path:     r.Paths[i],
			Relative: r.Relative[i],
		}
	}
	return entries
}

func (r *Result) add(name, path, rel string) {
	r.Filenames = append(r.Filenames, name)
	r.Paths = append(r.Paths, path)
	r.Relative = append(r.Relative, rel)
}

// 🔍 Files walks root recursively and returns every file accepted by filter
func Files(ctx context.Context, root string, filter extension.Filter) (*Result, error) {
	if root == "" {
		return nil, fault.InvalidArgument("root path is empty")
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	filter = filter.Normalized()
	result := &Result{}
	start := walkRoot(root)

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fault.IO("walk", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if path == start {
			return fault.IO("walk", root, syscall.ENOTDIR)
		}

		// symlinks to directories are listed but not descended into, so they
		// are not files either
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fault.IO("walk", path, err)
		}

		if !filter.Allows(d.Name()) || filter.Ignores(rel) {
			logger.Trace().Str("path", path).Msg("file filtered out")
			return nil
		}

		result.add(d.Name(), path, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", root).
		Int("files", result.Len()).
		Msg("enumerated files")

	return result, nil
}

// walkRoot returns the path WalkDir should start from. WalkDir does not
// follow a symlinked root, so a trailing separator is added to make the
// lookup resolve through the link; the joined paths stay under root.
func walkRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	if target, err := os.Stat(root); err == nil && target.IsDir() {
		return root + string(filepath.Separator)
	}
	return root
}
