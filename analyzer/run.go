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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/astutil"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/registry"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/run"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// run executes the patchcheck rules on one package.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("%s: %s %w", name, inspect.Analyzer.Name, ErrResultMissing)
	}

	exportDirectives(p)

	rules, err := registry.Rules(&r.rules, r.behavior)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if len(rules) == 0 {
		return nil, nil
	}

	ctx, task := trace.NewTask(context.Background(), "PatchCheck")
	defer task.End()

	pkg, err := model.New(model.Config{
		Fset:       p.Fset,
		Types:      p.Pkg,
		Info:       p.TypesInfo,
		Sizes:      p.TypesSizes,
		Files:      p.Files,
		ReadFile:   p.ReadFile,
		Inspector:  in,
		Incomplete: len(p.TypeErrors) > 0,
		Imported:   &factSource{pass: p},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	opts := run.DefaultOptions()
	opts.Rules = rules
	opts.Config = r.rules
	opts.Behavior = r.behavior

	diags, checkErr := opts.Check(ctx, pkg)
	if err := reportFailures(p, checkErr); err != nil {
		return nil, err
	}

	for i := range diags {
		p.Report(r.diagnostic(pkg, &diags[i]))
	}

	return nil, nil
}

// reportFailures reports rule failures as internal errors on their files
// and returns any other error.
func reportFailures(p *analysis.Pass, err error) error {
	if err == nil {
		return nil
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var other []error

	for _, err := range errs {
		var re *run.RuleError
		if !errors.As(err, &re) {
			other = append(other, err)

			continue
		}

		astutil.InternalError(p, re.Unit.File, re.Rule, "Rule %s failed: %v", re.Rule, re.Value)
	}

	return errors.Join(other...)
}

// diagnostic converts a diagnostic, materializing the selected fixes.
func (r *runOptions) diagnostic(pkg *model.Package, d *report.Diagnostic) analysis.Diagnostic {
	ad := analysis.Diagnostic{
		Pos:      d.Pos,
		End:      d.End,
		Category: d.Rule,
		Message:  d.Message,
	}

	for _, rel := range d.Related {
		ad.Related = append(ad.Related, analysis.RelatedInformation{Pos: rel.Pos, End: rel.End, Message: rel.Message})
	}

	for i, fix := range d.Fixes {
		if r.choice >= 0 && i != r.choice {
			continue
		}

		units, err := patch.Materialize(pkg, fix)
		if err != nil {
			continue
		}

		sf := analysis.SuggestedFix{Message: fix.Title}

		for _, edits := range units {
			for _, e := range edits {
				sf.TextEdits = append(sf.TextEdits, analysis.TextEdit{Pos: e.Pos, End: e.End, NewText: []byte(e.NewText)})
			}
		}

		ad.SuggestedFixes = append(ad.SuggestedFixes, sf)
	}

	return ad
}
