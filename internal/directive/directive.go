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

// Package directive reads `//patchcheck:name` directives from the doc comments
// of type declarations, in the package being checked and in its imports.
package directive

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"strings"
	"sync"
)

// Prefix starts a directive comment.
const Prefix = "//patchcheck:"

// Parse returns the directive names in doc, in order.
func Parse(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var names []string

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Prefix)
		if !ok {
			continue
		}

		if name, _, _ := strings.Cut(rest, " "); name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// OfSpec returns the directives of a type spec and, when the spec is not
// grouped, of its declaration.
func OfSpec(decl *ast.GenDecl, spec *ast.TypeSpec) []string {
	names := Parse(spec.Doc)

	if decl != nil && !decl.Lparen.IsValid() {
		for _, name := range Parse(decl.Doc) {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	return names
}

// Types returns the directives of every type declared at package level in files.
func Types(files []*ast.File, info *types.Info) map[*types.TypeName][]string {
	result := make(map[*types.TypeName][]string)

	for _, f := range files {
		eachType(f, func(decl *ast.GenDecl, spec *ast.TypeSpec) {
			names := OfSpec(decl, spec)
			if len(names) == 0 {
				return
			}

			if obj, ok := info.Defs[spec.Name].(*types.TypeName); ok {
				result[obj] = names
			}
		})
	}

	return result
}

func eachType(f *ast.File, yield func(*ast.GenDecl, *ast.TypeSpec)) {
	for _, d := range f.Decls {
		decl, ok := d.(*ast.GenDecl)
		if !ok || decl.Tok != token.TYPE {
			continue
		}

		for _, s := range decl.Specs {
			yield(decl, s.(*ast.TypeSpec))
		}
	}
}

// Source returns the directives declared on objects of other packages.
type Source interface {
	Directives(obj types.Object) []string
}

// Has reports whether names contains name.
func Has(names []string, name string) bool {
	return slices.Contains(names, name)
}

// FileSource reads directives from the source files of imported packages,
// located through the positions of their objects.
type FileSource struct {
	fset     *token.FileSet
	readFile func(string) ([]byte, error)

	mu    sync.Mutex
	files map[string]map[string][]string // file name -> type name -> directives
}

// NewFileSource returns a [FileSource] resolving positions in fset.
func NewFileSource(fset *token.FileSet, readFile func(string) ([]byte, error)) *FileSource {
	return &FileSource{fset: fset, readFile: readFile, files: make(map[string]map[string][]string)}
}

// Directives returns the directives of the type declaration of obj.
func (s *FileSource) Directives(obj types.Object) []string {
	if _, ok := obj.(*types.TypeName); !ok || !obj.Pos().IsValid() {
		return nil
	}

	filename := s.fset.Position(obj.Pos()).Filename
	if filename == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	declared, ok := s.files[filename]
	if !ok {
		declared = s.parse(filename)
		s.files[filename] = declared
	}

	return declared[obj.Name()]
}

// parse returns the directives of the types declared in filename. Files
// without any directive are not parsed.
func (s *FileSource) parse(filename string) map[string][]string {
	content, err := s.readFile(filename)
	if err != nil || !bytes.Contains(content, []byte(Prefix)) {
		return nil
	}

	f, err := parser.ParseFile(token.NewFileSet(), filename, content, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	declared := make(map[string][]string)

	eachType(f, func(decl *ast.GenDecl, spec *ast.TypeSpec) {
		if names := OfSpec(decl, spec); len(names) > 0 {
			declared[spec.Name.Name] = names
		}
	})

	return declared
}
