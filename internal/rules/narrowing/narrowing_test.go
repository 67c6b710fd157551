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

package narrowing_test

import (
	"strings"
	"testing"

	"fillmore-labs.com/patchcheck/checktest"
	. "fillmore-labs.com/patchcheck/internal/rules/narrowing"
	"fillmore-labs.com/patchcheck/internal/verify"
)

const src = `package a

func f(s int16, l int64, i int32, x float64, p *int16) int16 {
	s *= int16(l)     // want "s = int16\\(int64\\(s\\) \\* l\\)"
	s += int16(i)     // want "s = int16\\(int32\\(s\\) \\+ i\\)"
	s -= int16(l + 1) // want "s = int16\\(int64\\(s\\) - \\(l \\+ 1\\)\\)"
	s -= int16(l * 2) // want "s = int16\\(int64\\(s\\) - l \\* 2\\)"
	s /= int16(x)     // want "s = int16\\(float64\\(s\\) / x\\)"
	s *= (int16)(l)   // want "s = \\(int16\\)\\(int64\\(s\\) \\* l\\)"
	*p *= int16(l)    // want "\\*p = int16\\(int64\\(\\*p\\) \\* l\\)"
	s += s2()(l)
	s += int16(3)
	s += int16(s)
	i <<= int32(l)

	var f32 float32
	f32 *= float32(x) // want "f32 = float32\\(float64\\(f32\\) \\* x\\)"

	return s + int16(f32)
}

func s2() func(int64) int16 { return nil }
`

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	checktest.New(t, Name).AddSource("a.go", src).Run()
}

func TestNoFloats(t *testing.T) {
	t.Parallel()

	diags := checktest.New(t, Name).SetOption("floats", "false").AddSource("a.go", src).Diagnostics()

	if got, want := len(diags), 6; got != want {
		t.Errorf("Got %d diagnostics, want %d", got, want)
	}

	for _, d := range diags {
		if strings.Contains(d.Message, "float") {
			t.Errorf("Unexpected diagnostic: %s", d.Message)
		}
	}
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	checktest.NewRefactoring(t, Name).
		AddInput("a.go", `package a

func f(s int16, l int64) int16 {
	s *= int16(l)

	return s
}
`).
		AddOutput("a.go", `package a

func f(s int16, l int64) int16 {
	s = int16(int64(s) * l)

	return s
}
`).
		Run()
}

func TestUnsafe(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want verify.Status
	}{
		{
			name: "impure_operand",
			src: `package a

func f(a []int16, g func() int, l int64) {
	a[g()] *= int16(l)
}
`,
			want: verify.SideEffect,
		},
		{
			name: "shadowed_type",
			src: `package a

func f(s int16, l int64) int16 {
	{
		int64 := 1
		_ = int64
		s *= int16(l)
	}

	return s
}
`,
			want: verify.Collision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := checktest.New(t, Name).AddSource("a.go", tt.src).Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("Got %d diagnostics, want 1", len(diags))
			}

			if d := diags[0]; !d.Advisory() || d.Withheld.Status != tt.want {
				t.Errorf("Got withheld %v, want %v", d.Withheld, tt.want)
			}

			checktest.NewRefactoring(t, Name).AddInput("a.go", tt.src).ExpectUnchanged().Run()
		})
	}
}
