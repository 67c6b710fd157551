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

package suppress_test

import (
	"go/ast"
	"testing"

	. "fillmore-labs.com/patchcheck/internal/suppress"
	"fillmore-labs.com/patchcheck/internal/testsource"
)

const src = `package test

//nolint:narrowing
func suppressed() {
	var s int16
	s *= 2
}

func sibling() {
	var s int16
	s *= 2
}

func trailing() {
	var s int16
	s *= 2 //nolint:Narrowing,obsolete // reason
}

type (
	//nolint:patchcheck
	first struct{ a int }
	second struct {
		//nolint:donotmock
		b int
		c int
	}
)

func bare() {
	var s int16
	s *= 2 //nolint
}
`

func TestSuppressed(t *testing.T) {
	t.Parallel()

	pkg := testsource.Load(t, testsource.File{Path: "test.go", Src: src})
	u := pkg.Units[0]
	x := Build(u)

	// anchors by name
	anchors := make(map[string]ast.Node)

	for c := range u.Cursor.Preorder((*ast.FuncDecl)(nil), (*ast.TypeSpec)(nil), (*ast.Field)(nil)) {
		switch n := c.Node().(type) {
		case *ast.FuncDecl:
			ast.Inspect(n.Body, func(n ast.Node) bool {
				if s, ok := n.(*ast.AssignStmt); ok {
					anchors[c.Node().(*ast.FuncDecl).Name.Name] = s
				}

				return true
			})

		case *ast.TypeSpec:
			anchors[n.Name.Name] = n.Name

		case *ast.Field:
			if len(n.Names) > 0 {
				anchors[n.Names[0].Name] = n.Names[0]
			}
		}
	}

	tests := [...]struct {
		anchor string
		rule   string
		want   bool
	}{
		{"suppressed", "narrowing", true},
		{"suppressed", "obsolete", false},
		{"sibling", "narrowing", false},
		{"trailing", "narrowing", true},
		{"trailing", "obsolete", true},
		{"trailing", "dotimport", false},
		{"first", "donotmock", true},
		{"a", "anything", true},
		{"second", "donotmock", false},
		{"b", "donotmock", true},
		{"c", "donotmock", false},
		{"bare", "testnotrun", true},
	}

	for _, tt := range tests {
		t.Run(tt.anchor+"_"+tt.rule, func(t *testing.T) {
			t.Parallel()

			n, ok := anchors[tt.anchor]
			if !ok {
				t.Fatalf("Anchor %s not found", tt.anchor)
			}

			if got := x.Suppressed(tt.rule, n.Pos()); got != tt.want {
				t.Errorf("Got Suppressed(%s) = %t, want %t", tt.rule, got, tt.want)
			}
		})
	}
}

func TestFileScope(t *testing.T) {
	t.Parallel()

	pkg := testsource.Load(t, testsource.File{Path: "test.go", Src: `//nolint:obsolete
package test

func f() {}
`})
	u := pkg.Units[0]
	x := Build(u)

	pos := u.File.Decls[0].Pos()

	if !x.Suppressed("obsolete", pos) {
		t.Error("Expected package doc directive to suppress the file")
	}

	if x.Suppressed("narrowing", pos) {
		t.Error("Expected package doc directive to name only its rules")
	}
}

func TestDirective(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		want []string
	}{
		{"//nolint:a,b", []string{"a", "b"}},
		{"// nolint:A", []string{"a"}},
		{"//nolint", []string{"all"}},
		{"//nolint // why", []string{"all"}},
		{"//nolintx", nil},
		{"// not a directive", nil},
	}

	for _, tt := range tests {
		got, ok := Directive(&ast.Comment{Text: tt.text})
		if ok != (tt.want != nil) || len(got) != len(tt.want) {
			t.Errorf("Got Directive(%q) = %v, want %v", tt.text, got, tt.want)

			continue
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Got Directive(%q) = %v, want %v", tt.text, got, tt.want)
			}
		}
	}
}
