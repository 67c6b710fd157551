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

package report_test

import (
	"go/ast"
	"go/token"
	"testing"

	"fillmore-labs.com/patchcheck/internal/config"
	. "fillmore-labs.com/patchcheck/internal/report"
)

func TestEffective(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name     string
		def      Severity
		level    config.Level
		asWarn   bool
		want     Severity
		reported bool
	}{
		{"default", Warning, config.LevelDefault, false, Warning, true},
		{"off", Error, config.LevelOff, false, Error, false},
		{"raise", Info, config.LevelError, false, Error, true},
		{"lower", Error, config.LevelInfo, false, Info, true},
		{"errors_as_warnings", Error, config.LevelDefault, true, Warning, true},
		{"errors_as_warnings_override", Warning, config.LevelError, true, Warning, true},
		{"info_kept", Info, config.LevelDefault, true, Info, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, reported := tt.def.Effective(tt.level, tt.asWarn)
			if reported != tt.reported || reported && got != tt.want {
				t.Errorf("Got %v, %t, want %v, %t", got, reported, tt.want, tt.reported)
			}
		})
	}
}

func diag(file string, offset, end int, rule, msg string) Diagnostic {
	return Diagnostic{
		Span: Span{
			Start:  token.Position{Filename: file, Offset: offset},
			Finish: token.Position{Filename: file, Offset: end},
		},
		Rule:    rule,
		Message: msg,
	}
}

func TestSortDedup(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		diag("b.go", 1, 2, "r", "m"),
		diag("a.go", 5, 9, "r", "m"),
		diag("a.go", 5, 7, "s", "m"),
		diag("a.go", 5, 7, "r", "n"),
		diag("a.go", 5, 7, "r", "m"),
		diag("a.go", 5, 7, "r", "m"),
	}

	Sort(diags)
	diags = Dedup(diags)

	want := []Diagnostic{
		diag("a.go", 5, 7, "r", "m"),
		diag("a.go", 5, 7, "r", "n"),
		diag("a.go", 5, 7, "s", "m"),
		diag("a.go", 5, 9, "r", "m"),
		diag("b.go", 1, 2, "r", "m"),
	}

	if len(diags) != len(want) {
		t.Fatalf("Got %d diagnostics, want %d", len(diags), len(want))
	}

	for i := range want {
		if Compare(&diags[i], &want[i]) != 0 {
			t.Errorf("Got diagnostic %d = %s %s, want %s %s", i, diags[i].Rule, diags[i].Message, want[i].Rule, want[i].Message)
		}
	}
}

func TestOccurrences(t *testing.T) {
	t.Parallel()

	a := &ast.Ident{NamePos: 30, Name: "a"}
	b := &ast.Ident{NamePos: 10, Name: "b"}
	c := &ast.Ident{NamePos: 20, Name: "c"}

	primary, rest := Occurrences([]ast.Node{a, b, c})
	if primary != b || len(rest) != 2 || rest[0] != c || rest[1] != a {
		t.Errorf("Got primary %v, rest %v; want b, [c a]", primary, rest)
	}

	if primary, rest := Occurrences(nil); primary != nil || rest != nil {
		t.Errorf("Got %v, %v for no nodes", primary, rest)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		names []string
		want  string
	}{
		{[]string{"a"}, "'a'"},
		{[]string{"a", "b"}, "'a' and 'b'"},
		{[]string{"a", "b", "c"}, "'a', 'b' and 'c'"},
	}

	for _, tt := range tests {
		if got := Names(tt.names); got != tt.want {
			t.Errorf("Got Names(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	d := Diagnostic{
		Span:     Span{Start: token.Position{Filename: "a.go", Line: 3, Column: 7}},
		Rule:     "narrowing",
		Severity: Warning,
		Message:  "compound assignment narrows",
	}

	if got, want := d.String(), "a.go:3:7: warning: compound assignment narrows (narrowing)"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}
