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

package directive_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/patchcheck/internal/directive"
)

const src = `package marked

// Clock tells the time.
//
//patchcheck:donotmock because it is global
type Clock interface{ Now() int }

//patchcheck:donotmock
//patchcheck:other
type Single struct{}

//patchcheck:donotmock
type (
	Grouped struct{}

	//patchcheck:inner
	Inner struct{}
)

type Plain struct{}
`

func TestTypes(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "marked.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Can't parse: %v", err)
	}

	info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
	if _, err := (&types.Config{}).Check("marked", fset, []*ast.File{f}, info); err != nil {
		t.Fatalf("Can't type check: %v", err)
	}

	got := make(map[string]string)
	for obj, names := range Types([]*ast.File{f}, info) {
		got[obj.Name()] = strings.Join(names, " ")
	}

	want := map[string]string{
		"Clock":  "donotmock",
		"Single": "donotmock other",
		"Inner":  "inner",
	}

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Got directives %v, want %v", got, want)
	}
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	file := fset.AddFile("marked.go", -1, len(src))
	file.SetLinesForContent([]byte(src))

	reads := 0
	s := NewFileSource(fset, func(name string) ([]byte, error) {
		reads++
		if name != "marked.go" {
			return nil, os.ErrNotExist
		}

		return []byte(src), nil
	})

	at := func(name string) types.Object {
		return types.NewTypeName(file.Pos(strings.Index(src, "type "+name)+len("type ")), nil, name, nil)
	}

	tests := [...]struct {
		name string
		want []string
	}{
		{"Clock", []string{"donotmock"}},
		{"Single", []string{"donotmock", "other"}},
		{"Plain", nil},
	}

	for _, tt := range tests {
		if got := s.Directives(at(tt.name)); !slices.Equal(got, tt.want) {
			t.Errorf("Got Directives(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if reads != 1 {
		t.Errorf("Got %d reads, want 1", reads)
	}

	if got := s.Directives(types.NewVar(token.NoPos, nil, "v", nil)); got != nil {
		t.Errorf("Got directives %v for a variable", got)
	}
}
