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

// Package transfer copies a filtered file set from a source tree to a
// destination tree, keeping each file's path relative to the source root.
package transfer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filetransfer/pkg/enumerate"
	"github.com/walteh/filetransfer/pkg/extension"
	"github.com/walteh/filetransfer/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options describes a single transfer
type Options struct {
	Source      string           // root of the tree to copy from
	Destination string           // root of the tree to copy into
	Filter      extension.Filter // which files to copy
	Overwrite   bool             // replace existing destination files instead of refusing
}

// ✅ Validate checks the options before any filesystem access
func (o Options) Validate() error {
	if o.Source == "" {
		return fault.InvalidArgument("source path is empty")
	}
	if o.Destination == "" {
		return fault.InvalidArgument("destination path is empty")
	}
	// without overwrite the gate reports every file as existing
	if o.Overwrite && samePath(o.Source, o.Destination) {
		return fault.InvalidArgument("cannot overwrite %q onto itself", o.Source)
	}
	return o.Filter.Validate()
}

// 📄 Item is one planned file copy
type Item struct {
	Source      string // full source path
	Relative    string // path relative to both roots
	Destination string // full destination path
	Exists      bool   // destination existed when the plan was built
}

// 📋 Plan is the set of copies a transfer will perform
type Plan struct {
	Source      string
	Destination string
	Overwrite   bool
	Items       []Item
}

// 🏗️ NewPlan enumerates the source tree and computes every destination path
func NewPlan(ctx context.Context, opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := filepath.Clean(opts.Source)
	dst := filepath.Clean(opts.Destination)

	files, err := enumerate.Files(ctx, src, opts.Filter.Normalized())
	if err != nil {
		return nil, errors.Errorf("enumerating %s: %w", src, err)
	}

	plan := &Plan{
		Source:      src,
		Destination: dst,
		Overwrite:   opts.Overwrite,
		Items:       make([]Item, 0, files.Len()),
	}

	for _, path := range files.Paths {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return nil, errors.Errorf("relative path of %s: %w", path, fault.IO("rel", path, err))
		}

		item := Item{
			Source:      path,
			Relative:    rel,
			Destination: filepath.Join(dst, rel),
		}

		if _, err := os.Lstat(item.Destination); err == nil {
			item.Exists = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Errorf("checking destination: %w", fault.IO("stat", item.Destination, err))
		}

		plan.Items = append(plan.Items, item)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", src).
		Str("destination", dst).
		Int("files", len(plan.Items)).
		Int("conflicts", len(plan.Conflicts())).
		Msg("built transfer plan")

	return plan, nil
}

// Conflicts returns the items whose destination already exists.
func (p *Plan) Conflicts() []Item {
	var out []Item
	for _, item := range p.Items {
		if item.Exists {
			out = append(out, item)
		}
	}
	return out
}

// 🚧 Check returns a ConflictError when the plan may not proceed
func (p *Plan) Check() error {
	if p.Overwrite {
		return nil
	}
	conflicts := p.Conflicts()
	if len(conflicts) == 0 {
		return nil
	}
	paths := make([]string, len(conflicts))
	for i, item := range conflicts {
		paths[i] = item.Destination
	}
	return &fault.ConflictError{Paths: paths}
}

// 📥 Copy performs every copy in the plan after passing the existence gate
func (p *Plan) Copy(ctx context.Context) error {
	if err := p.Check(); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	for _, item := range p.Items {
		if err := copyFile(item.Source, item.Destination); err != nil {
			return errors.Errorf("copying %s: %w", item.Relative, err)
		}
		logger.Trace().
			Str("source", item.Source).
			Str("destination", item.Destination).
			Bool("replaced", item.Exists).
			Msg("copied file")
	}

	logger.Debug().
		Str("destination", p.Destination).
		Int("files", len(p.Items)).
		Msg("transfer complete")

	return nil
}

// 🏃 Run plans and performs a transfer
func Run(ctx context.Context, opts Options) (*Plan, error) {
	plan, err := NewPlan(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := plan.Copy(ctx); err != nil {
		return plan, err
	}
	return plan, nil
}

// copyFile copies file content only; permissions and timestamps are not kept.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fault.IO("mkdir", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fault.IO("open", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fault.IO("create", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fault.IO("copy", dst, err)
	}

	return fault.IO("close", dst, out.Close())
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
