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

// Package extension normalizes extension lists and decides which filenames
// pass an include/exclude filter.
//
// An extension is the text after the last "." of a filename. A name without
// any "." is its own extension. Matching is exact and case-sensitive.
package extension

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/filetransfer/pkg/fault"
)

// 🧹 Normalize returns a new slice with a single leading "." removed from each element
func Normalize(exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = strings.TrimPrefix(ext, ".")
	}
	return out
}

// 🔍 Of returns the extension of a filename
func Of(filename string) string {
	name := filepath.Base(filename)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// 🎯 Filter selects files by extension and, optionally, by glob pattern
type Filter struct {
	Include []string // extensions to keep; empty keeps everything
	Exclude []string // extensions to always drop
	Ignore  []string // doublestar patterns matched against slash-separated relative paths
}

// ✅ Validate checks that every filter element is usable
func (f Filter) Validate() error {
	for _, list := range []struct {
		name string
		exts []string
	}{
		{"include", f.Include},
		{"exclude", f.Exclude},
	} {
		for _, ext := range list.exts {
			if strings.ContainsRune(ext, '/') || strings.ContainsRune(ext, filepath.Separator) {
				return fault.InvalidArgument("%s extension %q contains a path separator", list.name, ext)
			}
		}
	}

	for _, pattern := range f.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fault.InvalidArgument("ignore pattern %q is not a valid glob", pattern)
		}
	}

	return nil
}

// 🧹 Normalized returns a copy of the filter with normalized extension lists
func (f Filter) Normalized() Filter {
	return Filter{
		Include: Normalize(f.Include),
		Exclude: Normalize(f.Exclude),
		Ignore:  append([]string(nil), f.Ignore...),
	}
}

// Allows reports whether filename passes the extension rule. The filter is
// expected to be normalized already.
func (f Filter) Allows(filename string) bool {
	ext := Of(filename)
	if len(f.Include) > 0 && !slices.Contains(f.Include, ext) {
		return false
	}
	return !slices.Contains(f.Exclude, ext)
}

// Ignores reports whether the relative path matches an ignore pattern.
func (f Filter) Ignores(rel string) bool {
	if len(f.Ignore) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range f.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// IsZero reports whether the filter lets every file through.
func (f Filter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0 && len(f.Ignore) == 0
}
