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

package checktest

import (
	"context"
	"go/format"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/run"
	"fillmore-labs.com/patchcheck/internal/testsource"
)

// Refactoring checks the fixes of one rule.
type Refactoring struct {
	base

	inputs    []testsource.File
	outputs   map[string]string
	choice    int
	unchanged bool
}

// NewRefactoring returns a [Refactoring] for the named rule, applying the first fix.
func NewRefactoring(tb testing.TB, rule string) *Refactoring {
	tb.Helper()

	return &Refactoring{
		base:    base{tb: tb, rule: rule, behavior: config.DefaultBehavior()},
		outputs: make(map[string]string),
	}
}

// SetOption sets a rule option.
func (r *Refactoring) SetOption(key, value string) *Refactoring {
	r.setOption(key, value)

	return r
}

// AddInput adds a source file to refactor.
func (r *Refactoring) AddInput(path, src string) *Refactoring {
	r.inputs = append(r.inputs, testsource.File{Path: path, Src: src})

	return r
}

// AddOutput sets the expected content of an input after refactoring.
// Inputs without an output are expected to be unchanged.
func (r *Refactoring) AddOutput(path, src string) *Refactoring {
	r.outputs[path] = src

	return r
}

// Choose selects the fix applied when a diagnostic offers several.
func (r *Refactoring) Choose(choice int) *Refactoring {
	r.choice = choice

	return r
}

// ExpectUnchanged expects every input to stay as it is.
func (r *Refactoring) ExpectUnchanged() *Refactoring {
	r.unchanged = true

	return r
}

// Run refactors the inputs and compares the results, then refactors the
// results again and expects no further change.
func (r *Refactoring) Run() {
	r.tb.Helper()

	if r.unchanged && len(r.outputs) > 0 {
		r.tb.Fatal("ExpectUnchanged conflicts with AddOutput")
	}

	opts := r.options()

	res := r.refactor(opts, r.inputs)

	results := make([]testsource.File, 0, len(r.inputs))

	for _, in := range r.inputs {
		got := in.Src
		if changed, ok := res.Changed[in.Path]; ok {
			got = string(changed)
		}

		want, ok := r.outputs[in.Path]
		if !ok {
			want = in.Src
		}

		if diff := compare(in.Path, want, got); diff != "" {
			r.tb.Errorf("Refactoring %s mismatch (-want +got):\n%s", in.Path, diff)
		}

		results = append(results, testsource.File{Path: in.Path, Src: got})
	}

	if len(res.Changed) == 0 || r.tb.Failed() {
		return
	}

	again := r.refactor(opts, results)
	for path, changed := range again.Changed {
		r.tb.Errorf("Refactoring %s is not idempotent, second pass gives:\n%s", path, changed)
	}
}

func (r *Refactoring) refactor(opts *run.Options, files []testsource.File) run.Result {
	r.tb.Helper()

	pkg := testsource.Load(r.tb, files...)

	res, err := opts.Refactor(context.Background(), pkg, r.choice)
	if err != nil {
		r.tb.Fatalf("Refactor failed: %v", err)
	}

	return res
}

// compare returns a unified diff of the formatted sources, empty if they are equal.
func compare(path, want, got string) string {
	want, got = normalize(want), normalize(got)
	if want == got {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: path + " (want)",
		ToFile:   path + " (got)",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}

	return diff
}

// normalize formats src, leaving it as it is when it does not parse.
func normalize(src string) string {
	formatted, err := format.Source([]byte(src))
	if err != nil {
		return src
	}

	return string(formatted)
}
