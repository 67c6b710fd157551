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

package run_test

import (
	"context"
	"errors"
	"go/ast"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	. "fillmore-labs.com/patchcheck/internal/run"
	"fillmore-labs.com/patchcheck/internal/testsource"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// renamer reports functions named bad* and renames them to prefix*.
type renamer struct {
	name      string
	prefix    string
	panicOn   string // unit path the rule panics on
	grouped   bool   // all occurrences form one issue
	unsafe    bool
	malformed bool
}

func (r renamer) Info() match.Info {
	return match.Info{Name: r.name, Doc: "rename bad functions", Severity: report.Error, Fixable: true}
}

func (renamer) Nodes() []ast.Node { return []ast.Node{(*ast.FuncDecl)(nil)} }

func (r renamer) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	if p.Unit.Path == r.panicOn {
		panic("boom")
	}

	fd := c.Node().(*ast.FuncDecl)
	if !strings.HasPrefix(fd.Name.Name, "bad") {
		return match.Match{}, false
	}

	var m match.Match
	if r.grouped {
		m.Key = "bad"
	}

	return m, true
}

func (r renamer) Verify(*match.Pass, *match.Match) verify.Verdict {
	if r.unsafe {
		return verify.Unsafe(verify.Collision, "unsafe")
	}

	return verify.OK()
}

func (r renamer) Report(p *match.Pass, ms []*match.Match) match.Finding {
	fix := patch.NewBuilder("Rename")

	for _, m := range ms {
		fd := p.Node(m.Node).(*ast.FuncDecl)
		fix.Replace(fd.Name, r.prefix+strings.TrimPrefix(fd.Name.Name, "bad"))

		if r.malformed {
			fix.Replace(fd.Name, "other")
		}
	}

	return match.Finding{Message: "Function " + p.Node(ms[0].Node).(*ast.FuncDecl).Name.Name + " is bad", Fixes: []*patch.Builder{fix}}
}

const (
	source = `package a

func badOne() {}

//nolint:rename
func badTwo() {}

func badThree() {}
`

	generated = `// Code generated by test. DO NOT EDIT.

package a

func badGen() {}
`
)

func load(t *testing.T) *model.Package {
	t.Helper()

	return testsource.Load(t,
		testsource.File{Path: "a.go", Src: source},
		testsource.File{Path: "gen.go", Src: generated},
	)
}

func options(rules ...match.Rule) *Options {
	opts := DefaultOptions()
	opts.Rules = rules
	opts.Logger = slog.New(slog.DiscardHandler)

	return opts
}

func messages(diags []report.Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Rule + ": " + d.Message
	}

	return msgs
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name      string
		generated bool
		want      []string
	}{
		{"default", false, []string{"rename: Function badOne is bad", "rename: Function badThree is bad"}},
		{"generated", true, []string{"rename: Function badOne is bad", "rename: Function badThree is bad", "rename: Function badGen is bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := options(renamer{name: "rename", prefix: "good"})
			opts.Behavior.Set(config.IncludeGenerated, tt.generated)

			diags, err := opts.Check(context.Background(), load(t))
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			if got := messages(diags); !slices.Equal(got, tt.want) {
				t.Errorf("Got diagnostics %q, want %q", got, tt.want)
			}

			for _, d := range diags {
				if d.Severity != report.Error || len(d.Fixes) != 1 || d.Advisory() {
					t.Errorf("Got diagnostic %s with %d fixes, want error with one fix", &d, len(d.Fixes))
				}
			}
		})
	}
}

func TestSuppressionIsPerRule(t *testing.T) {
	t.Parallel()

	opts := options(renamer{name: "rename", prefix: "good"}, renamer{name: "other", prefix: "fine"})

	diags, err := opts.Check(context.Background(), load(t))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	want := []string{
		"other: Function badOne is bad",
		"rename: Function badOne is bad",
		"other: Function badTwo is bad",
		"other: Function badThree is bad",
		"rename: Function badThree is bad",
	}

	if got := messages(diags); !slices.Equal(got, want) {
		t.Errorf("Got diagnostics %q, want %q", got, want)
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	pkg := load(t)

	var first []string

	for _, parallelism := range []int{1, 2, 8} {
		opts := options(renamer{name: "rename", prefix: "good"}, renamer{name: "other", prefix: "fine"})
		opts.Parallelism = parallelism

		diags, err := opts.Check(context.Background(), pkg)
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}

		got := messages(diags)
		if first == nil {
			first = got

			continue
		}

		if !slices.Equal(got, first) {
			t.Errorf("Got diagnostics %q with parallelism %d, want %q", got, parallelism, first)
		}
	}
}

func TestPanicIsolation(t *testing.T) {
	t.Parallel()

	opts := options(renamer{name: "rename", prefix: "good", panicOn: "a.go"}, renamer{name: "other", prefix: "fine"})
	opts.Behavior.Set(config.IncludeGenerated, true)

	diags, err := opts.Check(context.Background(), load(t))
	if !errors.Is(err, ErrRuleFailed) {
		t.Fatalf("Got error %v, want %v", err, ErrRuleFailed)
	}

	if re := (*RuleError)(nil); !errors.As(err, &re) || re.Rule != "rename" || re.Unit.Path != "a.go" {
		t.Errorf("Got error %v, want rule rename failing on a.go", err)
	}

	want := []string{
		"other: Function badOne is bad",
		"other: Function badTwo is bad",
		"other: Function badThree is bad",
		"other: Function badGen is bad",
		"rename: Function badGen is bad",
	}

	if got := messages(diags); !slices.Equal(got, want) {
		t.Errorf("Got diagnostics %q, want %q", got, want)
	}
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name             string
		level            config.Level
		errorsAsWarnings bool
		want             report.Severity
		count            int
	}{
		{"default", config.LevelDefault, false, report.Error, 2},
		{"info", config.LevelInfo, false, report.Info, 2},
		{"errors_as_warnings", config.LevelDefault, true, report.Warning, 2},
		{"off", config.LevelOff, false, report.Error, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := options(renamer{name: "rename", prefix: "good"})
			opts.Config.SetLevel("rename", tt.level)
			opts.Behavior.Set(config.ErrorsAsWarnings, tt.errorsAsWarnings)

			diags, err := opts.Check(context.Background(), load(t))
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			if len(diags) != tt.count {
				t.Fatalf("Got %d diagnostics, want %d", len(diags), tt.count)
			}

			for _, d := range diags {
				if d.Severity != tt.want {
					t.Errorf("Got severity %v, want %v", d.Severity, tt.want)
				}
			}
		})
	}
}

func TestGrouping(t *testing.T) {
	t.Parallel()

	opts := options(renamer{name: "other", prefix: "fine", grouped: true})

	diags, err := opts.Check(context.Background(), load(t))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(diags))
	}

	d := diags[0]
	if d.Start.Line != 3 || len(d.Related) != 2 {
		t.Errorf("Got diagnostic at line %d with %d related, want line 3 with 2", d.Start.Line, len(d.Related))
	}

	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 3 {
		t.Errorf("Got fixes %v, want one fix with 3 edits", d.Fixes)
	}
}

func TestWithheld(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name     string
		rule     renamer
		withheld verify.Status
	}{
		{"unsafe", renamer{name: "rename", prefix: "good", unsafe: true}, verify.Collision},
		{"malformed", renamer{name: "rename", prefix: "good", malformed: true}, verify.Safe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags, err := options(tt.rule).Check(context.Background(), load(t))
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			if len(diags) != 2 {
				t.Fatalf("Got %d diagnostics, want 2", len(diags))
			}

			for _, d := range diags {
				if len(d.Fixes) != 0 || !d.Advisory() || d.Withheld.Status != tt.withheld {
					t.Errorf("Got diagnostic %s with fixes %v, withheld %v, want advisory %v", &d, d.Fixes, d.Withheld, tt.withheld)
				}
			}
		})
	}
}

func TestCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := options(renamer{name: "rename", prefix: "good"}).Check(ctx, load(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}
