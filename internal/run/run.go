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

// Package run drives rules over a package: matching, verification, reporting
// and refactoring.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"log/slog"
	"runtime/trace"
	"slices"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/suppress"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// ErrRuleFailed is returned when a rule panicked on a unit.
var ErrRuleFailed = errors.New("rule failed")

// RuleError records a rule that panicked on a unit. It matches [ErrRuleFailed].
type RuleError struct {
	Rule  string
	Unit  *model.Unit
	Value any
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%v: %s on %s: %v", ErrRuleFailed, e.Rule, e.Unit.Path, e.Value)
}

func (e *RuleError) Unwrap() error { return ErrRuleFailed }

// furtherOccurrence is the message of related occurrences.
const furtherOccurrence = "Further occurrence"

// Check runs every rule over every unit of pkg and returns the diagnostics in
// deterministic order.
//
// Units and rules are checked concurrently. A rule failing on one unit does not
// affect other rules or units; failures are returned joined, together with the
// diagnostics of everything that succeeded.
func (o *Options) Check(ctx context.Context, pkg *model.Package) ([]report.Diagnostic, error) {
	ctx, task := trace.NewTask(ctx, "Check")
	defer task.End()

	if pkg.Types != nil {
		trace.Log(ctx, "package", pkg.Types.Path())
	}

	units := make([]*model.Unit, 0, len(pkg.Units))
	for _, u := range pkg.Units {
		if u.Generated && !o.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		units = append(units, u)
	}

	type result struct {
		diags []report.Diagnostic
		err   error
	}

	results := make([]result, len(units)*len(o.Rules))

	var g errgroup.Group
	g.SetLimit(o.parallelism())

	for i, u := range units {
		sup := suppress.Build(u)

		for j, r := range o.Rules {
			res := &results[i*len(o.Rules)+j]

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					res.err = err

					return nil
				}

				res.diags, res.err = o.checkUnit(ctx, pkg, u, sup, r)

				return nil
			})
		}
	}

	_ = g.Wait() // jobs record their errors

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		diags []report.Diagnostic
		errs  []error
	)

	for _, res := range results {
		diags = append(diags, res.diags...)

		if res.err != nil {
			errs = append(errs, res.err)
		}
	}

	report.Sort(diags)

	return report.Dedup(diags), errors.Join(errs...)
}

// checkUnit runs one rule over one unit.
func (o *Options) checkUnit(ctx context.Context, pkg *model.Package, u *model.Unit, sup *suppress.Index, r match.Rule) (diags []report.Diagnostic, err error) {
	info := r.Info()

	defer func() {
		if rec := recover(); rec != nil {
			err = &RuleError{Rule: info.Name, Unit: u, Value: rec}
			o.logger().LogAttrs(ctx, slog.LevelWarn, "Rule failed",
				slog.String("rule", info.Name), slog.String("file", u.Path), slog.Any("panic", rec))
		}
	}()

	defer trace.StartRegion(ctx, info.Name).End()

	severity, ok := info.Severity.Effective(o.Config.Level(info.Name), o.Behavior.Enabled(config.ErrorsAsWarnings))
	if !ok {
		return nil, nil
	}

	p := &match.Pass{Package: pkg, Unit: u, Flags: o.Config.FlagsFor(info.Name)}

	matches := match.Collect(p, r)
	matches = slices.DeleteFunc(matches, func(m *match.Match) bool {
		return sup.Suppressed(info.Name, p.Node(m.Node).Pos())
	})

	for _, group := range match.Group(matches) {
		diags = append(diags, o.diagnose(ctx, p, r, severity, group))
	}

	return diags, nil
}

// diagnose turns the occurrences of one issue into a diagnostic at the primary occurrence.
func (o *Options) diagnose(ctx context.Context, p *match.Pass, r match.Rule, severity report.Severity, group []*match.Match) report.Diagnostic {
	name := r.Info().Name

	nodes := make([]ast.Node, len(group))
	for i, m := range group {
		nodes[i] = p.Node(m.Node)
	}

	primary, rest := report.Occurrences(nodes)

	verdict := verify.OK()
	for _, m := range group {
		if verdict = r.Verify(p, m); !verdict.Safe() {
			break
		}
	}

	finding := r.Report(p, group)

	d := report.Diagnostic{
		Span:     report.NodeSpan(p.Unit, primary),
		Rule:     name,
		Severity: severity,
		Message:  finding.Message,
	}

	for _, n := range rest {
		d.Related = append(d.Related, report.Related{Span: report.NodeSpan(p.Unit, n), Message: furtherOccurrence})
	}

	if !verdict.Safe() {
		d.Withheld = verdict

		return d
	}

	for _, b := range finding.Fixes {
		fix, err := b.Build()
		if err != nil {
			o.logger().LogAttrs(ctx, slog.LevelWarn, "Malformed patch",
				slog.String("rule", name), slog.String("position", d.Start.String()), slog.Any("error", err))

			d.Fixes = nil

			break
		}

		d.Fixes = append(d.Fixes, fix)
	}

	return d
}
