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
	"github.com/walteh/filetransfer/pkg/extension"
)

// filterFlags binds the include/exclude/ignore flags shared by list and copy
type filterFlags struct {
	include []string
	exclude []string
	ignore  []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.include, "include", "i", nil, "only keep files with these extensions (e.g. txt,.png)")
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "e", nil, "drop files with these extensions")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "drop files whose relative path matches these globs (e.g. '**/.git/**')")
}

func (f *filterFlags) filter() extension.Filter {
	return extension.Filter{
		Include: f.include,
		Exclude: f.exclude,
		Ignore:  f.ignore,
	}
}
