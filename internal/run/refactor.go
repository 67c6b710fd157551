// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package run

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
)

// Result is the outcome of [Options.Refactor].
type Result struct {
	// Changed maps the path of every modified unit to its new content.
	Changed map[string][]byte

	// Applied counts the fixes applied, Skipped those conflicting with an applied one.
	Applied, Skipped int

	// Diagnostics are all diagnostics of the check.
	Diagnostics []report.Diagnostic
}

// Refactor checks pkg and applies fix number choice of every diagnostic offering one.
//
// Fixes are accepted in diagnostic order; a fix overlapping an already accepted
// fix is skipped. Import changes are materialized for the accepted fixes together.
// The returned error joins rule failures; the result is still valid then.
func (o *Options) Refactor(ctx context.Context, pkg *model.Package, choice int) (Result, error) {
	diags, checkErr := o.Check(ctx, pkg)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ctx, task := trace.NewTask(ctx, "Refactor")
	defer task.End()

	res := Result{Changed: make(map[string][]byte), Diagnostics: diags}

	var (
		accepted []patch.Fix
		edits    []patch.Edit
	)

	for i := range diags {
		d := &diags[i]
		if choice < 0 || choice >= len(d.Fixes) {
			continue
		}

		fix := d.Fixes[choice]
		if patch.Conflict(edits, fix.Edits) {
			o.logger().LogAttrs(ctx, slog.LevelDebug, "Skipping conflicting fix",
				slog.String("rule", d.Rule), slog.String("position", d.Start.String()))

			res.Skipped++

			continue
		}

		accepted = append(accepted, fix)
		edits = append(edits, fix.Edits...)
		res.Applied++
	}

	if len(accepted) == 0 {
		return res, checkErr
	}

	units, err := patch.Materialize(pkg, accepted...)
	if err != nil {
		return res, fmt.Errorf("materializing fixes: %w", err)
	}

	for u, unitEdits := range units {
		out, err := patch.ApplyUnit(u, unitEdits)
		if err != nil {
			return res, fmt.Errorf("applying fixes: %w", err)
		}

		if !bytes.Equal(out, u.Content) {
			res.Changed[u.Path] = out
		}
	}

	return res, checkErr
}
