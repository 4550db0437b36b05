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

package log

import (
	"context"

	"github.com/walteh/filetransfer/pkg/transfer"
)

// 📋 LogPlan prints one line per planned item. Kind is "plan" for a dry run
// and "copy" once the files were written.
func (l *Logger) LogPlan(ctx context.Context, plan *transfer.Plan, kind string) {
	for _, item := range plan.Items {
		op := FileOperation{
			Path:   item.Relative,
			Kind:   kind,
			Status: statusOf(item, plan.Overwrite),
		}
		switch {
		case !item.Exists:
			op.IsNew = true
		case plan.Overwrite:
			op.IsReplaced = true
		default:
			op.IsConflict = true
		}
		l.LogFileOperation(ctx, op)
	}
}

func statusOf(item transfer.Item, overwrite bool) string {
	switch {
	case !item.Exists:
		return "new"
	case overwrite:
		return "overwrite"
	default:
		return "exists"
	}
}
