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

// Package obsolete replaces deprecated io/ioutil functions.
//
// Most functions have a drop-in replacement in io or os. ioutil.ReadDir
// returns []fs.FileInfo while os.ReadDir returns []fs.DirEntry, so it is
// replaced only where every use of the result works with both.
package obsolete

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Name is the rule name.
const Name = "obsolete"

const ioutil = "io/ioutil"

// replacement is the modern equivalent of an ioutil function.
type replacement struct {
	path, pkg, name string
}

var replacements = map[string]replacement{
	"Discard":   {"io", "io", "Discard"},
	"NopCloser": {"io", "io", "NopCloser"},
	"ReadAll":   {"io", "io", "ReadAll"},
	"ReadDir":   {"os", "os", "ReadDir"},
	"ReadFile":  {"os", "os", "ReadFile"},
	"TempDir":   {"os", "os", "MkdirTemp"},
	"TempFile":  {"os", "os", "CreateTemp"},
	"WriteFile": {"os", "os", "WriteFile"},
}

type rule struct {
	// readDir enables replacing ioutil.ReadDir.
	readDir bool
}

// New creates the rule. The option "readdir" (default true) enables the
// replacement of ioutil.ReadDir.
func New(flags config.Flags) (match.Rule, error) {
	readDir, err := flags.Bool("readdir", true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return rule{readDir: readDir}, nil
}

func (rule) Info() match.Info {
	return match.Info{
		Name:     Name,
		Doc:      "replace deprecated io/ioutil functions",
		Severity: report.Info,
		Fixable:  true,
	}
}

func (rule) Nodes() []ast.Node { return []ast.Node{(*ast.SelectorExpr)(nil)} }

func (r rule) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	sel := c.Node().(*ast.SelectorExpr)

	x, ok := sel.X.(*ast.Ident)
	if !ok {
		return match.Match{}, false
	}

	obj, ok := p.Resolver().ObjectOf(x)
	if !ok {
		return match.Match{}, false
	}

	pn, ok := obj.(*types.PkgName)
	if !ok || pn.Imported().Path() != ioutil {
		return match.Match{}, false
	}

	repl, ok := replacements[sel.Sel.Name]
	if !ok || sel.Sel.Name == "ReadDir" && !r.readDir {
		return match.Match{}, false
	}

	return match.Match{Data: repl}, true
}

func (rule) Verify(p *match.Pass, m *match.Match) verify.Verdict {
	sel := p.Node(m.Node).(*ast.SelectorExpr)
	repl := m.Data.(replacement)

	qualifier, want := patch.Qualifier(p.Unit, p.Info(), repl.path, repl.pkg)

	v := verify.NameFree(p.Resolver(), sel.Pos(), qualifier, want)
	if !v.Safe() || repl.name != "ReadDir" {
		return v
	}

	return dirEntryCompatible(p, m)
}

func (rule) Report(p *match.Pass, ms []*match.Match) match.Finding {
	m := ms[0]
	sel := p.Node(m.Node).(*ast.SelectorExpr)
	repl := m.Data.(replacement)

	qualifier, existing := patch.Qualifier(p.Unit, p.Info(), repl.path, repl.pkg)
	replaced := qualifier + "." + repl.name

	fix := patch.NewBuilder("Replace with " + replaced).Replace(sel, replaced)
	if existing == nil {
		fix.AddImport(repl.path, "")
	}

	fix.RemoveImport(ioutil)

	return match.Finding{
		Message: fmt.Sprintf("ioutil.%s is deprecated; use %s", sel.Sel.Name, replaced),
		Fixes:   []*patch.Builder{fix},
	}
}
