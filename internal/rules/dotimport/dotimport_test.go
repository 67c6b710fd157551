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

package dotimport_test

import (
	"testing"

	"fillmore-labs.com/patchcheck/checktest"
	. "fillmore-labs.com/patchcheck/internal/rules/dotimport"
	"fillmore-labs.com/patchcheck/internal/verify"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	checktest.New(t, Name).AddSource("a.go", `package a

import (
	. "strings"
	"strings"
)

func f(s string) string {
	return ToUpper(s) + strings.ToLower(s) // want "Dot import of \"strings\": use 'strings.ToUpper' and 'strings.TrimSpace'"
}

func g(s string) string {
	return TrimSpace(ToUpper(s))
}
`).Run()
}

func TestQualifyAll(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoring(t, Name).
		AddInput("a.go", `package a

import (
	. "strings"
	"strings"
)

func f(s string) string {
	return ToUpper(s) + strings.ToLower(s)
}

func g(s string) string {
	return ToUpper(s)
}
`).
		AddOutput("a.go", `package a

import (
	"strings"
)

func f(s string) string {
	return strings.ToUpper(s) + strings.ToLower(s)
}

func g(s string) string {
	return strings.ToUpper(s)
}
`).
		Run()
}

func TestQualifyTypes(t *testing.T) {
	t.Parallel()

	const src = `package a

import . "strings"

func f(s string) string {
	var b Builder // want "use 'strings.Builder' and 'strings.ToUpper'"

	b.WriteString(ToUpper(s))

	return b.String()
}
`

	diags := checktest.New(t, Name).AddSource("a.go", src).Diagnostics()
	if len(diags) != 1 || diags[0].Advisory() {
		t.Fatalf("Got %d diagnostics, want one with a fix", len(diags))
	}

	checktest.NewRefactoring(t, Name).
		AddInput("a.go", src).
		AddOutput("a.go", `package a

import "strings"

func f(s string) string {
	var b strings.Builder // want "use 'strings.Builder' and 'strings.ToUpper'"

	b.WriteString(strings.ToUpper(s))

	return b.String()
}
`).
		Run()
}

func TestLocalShadow(t *testing.T) {
	t.Parallel()

	const src = `package a

import . "strings"

func f(s string) string {
	ToUpper := func(s string) string { return s }

	return ToUpper(s) + ToLower(s) // want "use 'strings.ToLower'$"
}
`

	checktest.New(t, Name).AddSource("a.go", src).Run()

	checktest.NewRefactoring(t, Name).
		AddInput("a.go", src).
		AddOutput("a.go", `package a

import "strings"

func f(s string) string {
	ToUpper := func(s string) string { return s }

	return ToUpper(s) + strings.ToLower(s) // want "use 'strings.ToLower'$"
}
`).
		Run()
}

func TestQualifierCollision(t *testing.T) {
	t.Parallel()

	const src = `package a

import . "strings"

func f(strings []string) string {
	return ToUpper(strings[0])
}
`

	diags := checktest.New(t, Name).AddSource("a.go", src).Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(diags))
	}

	if d := diags[0]; !d.Advisory() || d.Withheld.Status != verify.Collision {
		t.Errorf("Got fixes %v, withheld %v; want advisory collision", d.Fixes, d.Withheld)
	}

	checktest.NewRefactoring(t, Name).AddInput("a.go", src).ExpectUnchanged().Run()
}

func TestPackages(t *testing.T) {
	t.Parallel()

	checktest.New(t, Name).
		SetOption("packages", "bytes").
		AddSource("a.go", `package a

import . "strings"

func f(s string) string {
	return ToUpper(s)
}
`).Run()
}
