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
	"context"

	"github.com/walteh/filetransfer/pkg/fault"
	"github.com/walteh/filetransfer/pkg/log"
	"github.com/walteh/filetransfer/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🏃 runTransfer plans a transfer, prints it, and copies unless dryRun is set
func runTransfer(ctx context.Context, name string, topts transfer.Options, dryRun bool) error {
	console := log.FromContext(ctx)
	console.StartJob(ctx, log.JobOperation{
		Name:        name,
		Source:      topts.Source,
		Destination: topts.Destination,
		DryRun:      dryRun,
	})
	defer console.EndJob(ctx)

	if topts.Filter.IsZero() {
		console.Info("no filters, every file is selected")
	}

	plan, err := transfer.NewPlan(ctx, topts)
	if err != nil {
		return errors.Errorf("planning %s: %w", name, err)
	}

	if dryRun {
		console.LogPlan(ctx, plan, "plan")
		if err := plan.Check(); err != nil {
			console.Warningf("%d destination files already exist, pass --overwrite to replace them", len(plan.Conflicts()))
		}
		console.Infof("%d files would be copied", len(plan.Items))
		return nil
	}

	if err := plan.Copy(ctx); err != nil {
		if errors.Is(err, fault.ErrDestinationExists) {
			conflicts := &transfer.Plan{Items: plan.Conflicts()}
			console.LogPlan(ctx, conflicts, "copy")
			console.Warning("nothing was copied, pass --overwrite to replace existing files")
		} else {
			console.Errorf("%s stopped after a partial copy: %v", name, err)
		}
		return errors.Errorf("transferring %s: %w", name, err)
	}

	console.LogPlan(ctx, plan, "copy")
	console.Successf("copied %d files to %s", len(plan.Items), plan.Destination)
	return nil
}
