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

// Package dotimport qualifies identifiers brought into scope by dot imports.
//
// All uses of one dot import are a single issue: it is reported at the first
// use and fixed at every use, after which the dot import is removed.
package dotimport

import (
	"go/ast"
	"go/types"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Name is the rule name.
const Name = "dotimport"

type rule struct {
	// packages restricts the rule to these import paths when not empty.
	packages []string
}

// New creates the rule. The option "packages" restricts it to a list of import paths.
func New(flags config.Flags) (match.Rule, error) {
	return rule{packages: flags.List("packages")}, nil
}

func (rule) Info() match.Info {
	return match.Info{
		Name:     Name,
		Doc:      "qualify identifiers imported with a dot import",
		Severity: report.Warning,
		Fixable:  true,
	}
}

func (rule) Nodes() []ast.Node { return []ast.Node{(*ast.Ident)(nil)} }

// use is the payload of a match.
type use struct {
	pkg *types.Package
}

func (r rule) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	if kind, _ := c.ParentEdge(); kind == edge.SelectorExpr_Sel {
		return match.Match{}, false
	}

	id := c.Node().(*ast.Ident)

	obj, ok := p.Info().Uses[id]
	if !ok {
		return match.Match{}, false
	}

	if _, ok := p.Resolver().ObjectOf(id); !ok {
		return match.Match{}, false // incomplete
	}

	pkg := obj.Pkg()
	if pkg == nil || pkg == p.Package.Types || obj.Parent() != pkg.Scope() {
		return match.Match{}, false
	}

	if r.dotImport(p, pkg) == nil {
		return match.Match{}, false
	}

	return match.Match{Key: pkg.Path(), Data: use{pkg: pkg}}, true
}

// dotImport returns the dot import of pkg in the unit, or nil.
func (r rule) dotImport(p *match.Pass, pkg *types.Package) *types.PkgName {
	if len(r.packages) > 0 && !slices.Contains(r.packages, pkg.Path()) {
		return nil
	}

	for _, spec := range p.Unit.File.Imports {
		if spec.Name == nil || spec.Name.Name != "." {
			continue
		}

		if pn := p.Info().PkgNameOf(spec); pn != nil && pn.Imported() == pkg {
			return pn
		}
	}

	return nil
}

func (r rule) Verify(p *match.Pass, m *match.Match) verify.Verdict {
	id := p.Node(m.Node).(*ast.Ident)
	u := m.Data.(use)

	var imported types.Object
	if pn := r.dotImport(p, u.pkg); pn != nil {
		imported = pn.Imported().Scope().Lookup(id.Name)
	}

	qualifier, want := patch.Qualifier(p.Unit, p.Info(), u.pkg.Path(), u.pkg.Name())

	return verify.First(
		verify.ResolvesTo(p.Resolver(), id, imported),
		verify.NameFree(p.Resolver(), id.Pos(), qualifier, want),
	)
}

func (rule) Report(p *match.Pass, ms []*match.Match) match.Finding {
	pkg := ms[0].Data.(use).pkg
	qualifier, existing := patch.Qualifier(p.Unit, p.Info(), pkg.Path(), pkg.Name())

	var names []string

	fix := patch.NewBuilder("Qualify identifiers of " + strconv.Quote(pkg.Path()))

	for _, m := range ms {
		id := p.Node(m.Node).(*ast.Ident)
		qualified := qualifier + "." + id.Name
		fix.Replace(id, qualified)

		if !slices.Contains(names, qualified) {
			names = append(names, qualified)
		}
	}

	if existing == nil {
		fix.AddImport(pkg.Path(), "")
	}

	fix.RemoveImport(pkg.Path())

	slices.Sort(names)

	return match.Finding{
		Message: "Dot import of " + strconv.Quote(pkg.Path()) + ": use " + report.Names(names),
		Fixes:   []*patch.Builder{fix},
	}
}
