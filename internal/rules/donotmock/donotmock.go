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

// Package donotmock reports test doubles of types that must not be mocked.
//
// A type is marked with a `//patchcheck:donotmock` directive in its doc
// comment, in the checked package or one it imports, or configured as
// "path.Name". A type declared in a test file that embeds a marked type, or
// implements a marked interface, is reported. The rule is advisory: there is
// no mechanical fix.
package donotmock

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/directive"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Name is the rule name.
const Name = "donotmock"

// Directive marks a type that must not be mocked.
const Directive = directive.Prefix + Name

type rule struct {
	// types are configured do-not-mock types as "path.Name".
	types []string

	// testsOnly restricts the rule to test files.
	testsOnly bool
}

// New creates the rule. Options are "types", a list of additional types as
// "path.Name", and "tests-only" (default true).
func New(flags config.Flags) (match.Rule, error) {
	testsOnly, err := flags.Bool("tests-only", true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return rule{types: flags.List("types"), testsOnly: testsOnly}, nil
}

func (rule) Info() match.Info {
	return match.Info{
		Name:     Name,
		Doc:      "do not mock types that are marked as not mockable",
		Severity: report.Warning,
		Fixable:  false,
	}
}

func (rule) Nodes() []ast.Node { return []ast.Node{(*ast.TypeSpec)(nil)} }

func (r rule) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	if r.testsOnly && !p.Unit.Test() {
		return match.Match{}, false
	}

	spec := c.Node().(*ast.TypeSpec)
	if spec.Assign.IsValid() {
		return match.Match{}, false // alias
	}

	obj, ok := p.Info().Defs[spec.Name].(*types.TypeName)
	if !ok || !resolved(obj.Type()) {
		return match.Match{}, false
	}

	for _, marked := range r.marked(p) {
		if marked == obj || !mocks(obj.Type(), marked.Type()) {
			continue
		}

		m := match.Match{Data: marked}
		m.Capture("name", c.ChildAt(edge.TypeSpec_Name, -1))

		return m, true
	}

	return match.Match{}, false
}

// marked returns the do-not-mock types visible to the package: those declared
// in it, those of its imports carrying the directive and the configured ones.
func (r rule) marked(p *match.Pass) []*types.TypeName {
	var marked []*types.TypeName

	var files []*ast.File
	for _, u := range p.Package.Units {
		files = append(files, u.File)
	}

	for obj, names := range directive.Types(files, p.Info()) {
		if directive.Has(names, Name) && model.Valid(obj.Type()) {
			marked = append(marked, obj)
		}
	}

	if imported := p.Package.Imported; imported != nil {
		for _, pkg := range p.Package.Types.Imports() {
			scope := pkg.Scope()
			for _, name := range scope.Names() {
				obj, ok := scope.Lookup(name).(*types.TypeName)
				if ok && obj.Exported() && directive.Has(imported.Directives(obj), Name) {
					marked = append(marked, obj)
				}
			}
		}
	}

	for _, qualified := range r.types {
		if obj := lookup(p.Package.Types, qualified); obj != nil {
			marked = append(marked, obj)
		}
	}

	slices.SortFunc(marked, func(a, b *types.TypeName) int { return cmp.Compare(a.Pos(), b.Pos()) })

	return marked
}

// lookup resolves "path.Name" in pkg or its direct imports.
func lookup(pkg *types.Package, qualified string) *types.TypeName {
	i := strings.LastIndexByte(qualified, '.')
	if i <= 0 {
		return nil
	}

	path, name := qualified[:i], qualified[i+1:]

	candidates := append([]*types.Package{pkg}, pkg.Imports()...)
	for _, c := range candidates {
		if c.Path() != path {
			continue
		}

		obj, ok := c.Scope().Lookup(name).(*types.TypeName)
		if ok && model.Valid(obj.Type()) {
			return obj
		}
	}

	return nil
}

// resolved reports whether t and all its fields have valid types, so method
// sets are complete.
func resolved(t types.Type) bool {
	if !model.Valid(t) {
		return false
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return true
	}

	for field := range st.Fields() {
		if !model.Valid(field.Type()) {
			return false
		}
	}

	return true
}

// mocks reports whether t embeds marked or implements the marked interface.
func mocks(t, marked types.Type) bool {
	if iface, ok := marked.Underlying().(*types.Interface); ok {
		if iface.NumMethods() == 0 || types.IsInterface(t) {
			return false
		}

		return types.Implements(t, iface) || types.Implements(types.NewPointer(t), iface)
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return false
	}

	for field := range st.Fields() {
		if !field.Embedded() {
			continue
		}

		ft := field.Type()
		if ptr, ok := ft.(*types.Pointer); ok {
			ft = ptr.Elem()
		}

		if types.Identical(ft, marked) {
			return true
		}
	}

	return false
}

func (rule) Verify(*match.Pass, *match.Match) verify.Verdict { return verify.OK() }

func (rule) Report(p *match.Pass, ms []*match.Match) match.Finding {
	name := p.Captured(ms[0], "name").(*ast.Ident)
	marked := ms[0].Data.(*types.TypeName)

	return match.Finding{
		Message: fmt.Sprintf("Type %s mocks %s, which must not be mocked; use the real implementation or a fake provided by its package",
			name.Name, types.TypeString(marked.Type(), types.RelativeTo(p.Package.Types))),
	}
}
