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

// Package testsource parses and type-checks in-memory Go sources for tests.
//
// It handles the boilerplate of building a [model.Package] from source
// strings, including statement fragments wrapped in a function body.
package testsource

import (
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"testing"

	"fillmore-labs.com/patchcheck/internal/model"
)

const testpkg = "test"

// File is one in-memory source file.
type File struct {
	Path, Src string
}

// Fragment loads a statement fragment wrapped as `package test; func _() { ... }`.
//
// The wrapper header is three lines, so line n of src is line n+3 of the file.
func Fragment(tb testing.TB, src string) *model.Package {
	tb.Helper()

	return Load(tb, File{Path: "test.go", Src: Wrap(src)})
}

// Wrap wraps a statement fragment into a compilable file.
func Wrap(src string) string {
	const (
		header = "package " + testpkg + "\n\nfunc _() {\n"
		suffix = "\n}\n"
	)

	return header + src + suffix
}

// Load parses and type-checks the files as one package. Type errors fail the test.
func Load(tb testing.TB, files ...File) *model.Package {
	tb.Helper()

	pkg, err := load(files, false)
	if err != nil {
		tb.Fatalf("Can't load sources: %v", err)
	}

	return pkg
}

// LoadIncomplete is like [Load] but tolerates type errors, marking the package incomplete.
func LoadIncomplete(tb testing.TB, files ...File) *model.Package {
	tb.Helper()

	pkg, err := load(files, true)
	if err != nil {
		tb.Fatalf("Can't load sources: %v", err)
	}

	return pkg
}

// errNoFiles is returned when there is nothing to load.
var errNoFiles = errors.New("no source files")

func load(files []File, tolerant bool) (*model.Package, error) {
	if len(files) == 0 {
		return nil, errNoFiles
	}

	fset := token.NewFileSet()
	content := make(map[string][]byte, len(files))
	asts := make([]*ast.File, 0, len(files))

	for _, f := range files {
		file, err := parser.ParseFile(fset, f.Path, f.Src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Path, err)
		}

		content[f.Path] = []byte(f.Src)
		asts = append(asts, file)
	}

	var typeErrors []error

	conf := types.Config{Importer: importer.Default()}
	if tolerant {
		conf.Error = func(err error) { typeErrors = append(typeErrors, err) }
	}

	info := NewInfo()

	tpkg, err := conf.Check(asts[0].Name.Name, fset, asts, info)
	if err != nil && !tolerant {
		return nil, fmt.Errorf("type checking: %w", err)
	}

	return model.New(model.Config{
		Fset:  fset,
		Types: tpkg,
		Info:  info,
		Files: asts,
		ReadFile: func(filename string) ([]byte, error) {
			if c, ok := content[filename]; ok {
				return c, nil
			}

			return nil, fmt.Errorf("%s: %w", filename, os.ErrNotExist)
		},
		Incomplete: len(typeErrors) > 0,
	})
}

// NewInfo returns a [types.Info] with every map the rules use.
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
}
