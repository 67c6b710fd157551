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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/patchcheck/analyzer"
	"fillmore-labs.com/patchcheck/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial bool
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: false,
			args:    []string{"-narrowing"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: true,
			args:    []string{"-narrowing=false"},
			want:    false,
		},
		{
			name:    "Default",
			initial: true,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rules config.RuleSet
			if !tt.initial {
				rules.Set("narrowing", false)
			}

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			fv := NewRuleValue(&rules, "narrowing")
			fs.Var(fv, "narrowing", "enable narrowing")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if rules.Enabled("narrowing") != tt.want {
				t.Errorf("narrowing enabled = %v, want %v", rules.Enabled("narrowing"), tt.want)
			}
		})
	}
}

func TestBehaviorValue(t *testing.T) {
	t.Parallel()

	behavior := config.DefaultBehavior()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(NewBehaviorValue(&behavior, config.IncludeGenerated), "generated", "check generated files")

	if err := fs.Parse([]string{"-generated"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !behavior.Enabled(config.IncludeGenerated) {
		t.Error("IncludeGenerated not enabled")
	}

	if err := fs.Parse([]string{"-generated=maybe"}); err == nil {
		t.Error("Parse succeeded, want error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	var rules config.RuleSet

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewRuleValue(&rules, "narrowing")
	fs.Var(fv, "narrowing", "enable narrowing")

	const expectedUsage = `
  -narrowing
    	enable narrowing (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	a := New()

	for _, name := range []string{"donotmock", "dotimport", "narrowing", "obsolete", "testnotrun", "generated", "choice", "opt", "severity"} {
		if a.Flags.Lookup(name) == nil {
			t.Errorf("Flag -%s not registered", name)
		}
	}

	if err := a.Flags.Parse([]string{"-opt=narrowing.floats=false", "-severity=obsolete=OFF", "-testnotrun=false"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := a.Flags.Parse([]string{"-opt=floats"}); err == nil {
		t.Error("Parse of invalid option succeeded, want error")
	}
}
