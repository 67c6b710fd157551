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

// Package testnotrun reports test functions that go test does not run.
//
// A function in a test file taking a single *testing.T that it uses, which is
// named like a test but not exported as one (testFoo, Testfoo) and is never
// referenced, was most likely meant to run. Two fixes are offered: renaming
// it to TestFoo, and renaming it while skipping it for now.
package testnotrun

import (
	"fmt"
	"go/ast"
	"go/types"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Name is the rule name.
const Name = "testnotrun"

const defaultSkipMessage = "not yet enabled"

type rule struct {
	skipMessage string
}

// New creates the rule. The option "skip-message" sets the reason passed to t.Skip.
func New(flags config.Flags) (match.Rule, error) {
	msg, ok := flags.String("skip-message")
	if !ok {
		msg = defaultSkipMessage
	}

	return rule{skipMessage: msg}, nil
}

func (rule) Info() match.Info {
	return match.Info{
		Name:     Name,
		Doc:      "test function is not run by go test",
		Severity: report.Error,
		Fixable:  true,
	}
}

func (rule) Nodes() []ast.Node { return []ast.Node{(*ast.FuncDecl)(nil)} }

// candidate is the payload of a match.
type candidate struct {
	param  string // name of the *testing.T parameter
	rename string
}

func (rule) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	if !p.Unit.Test() {
		return match.Match{}, false
	}

	fd := c.Node().(*ast.FuncDecl)
	if fd.Recv != nil || fd.Body == nil || fd.Type.TypeParams != nil || fd.Type.Results != nil {
		return match.Match{}, false
	}

	rename, ok := testName(fd.Name.Name)
	if !ok {
		return match.Match{}, false
	}

	param, ok := testingParam(p.Info(), fd)
	if !ok {
		return match.Match{}, false
	}

	fn, ok := p.Info().Defs[fd.Name].(*types.Func)
	if !ok || !used(p, param) || referenced(p, fn) {
		return match.Match{}, false
	}

	return match.Match{Data: candidate{param: param.Name(), rename: rename}}, true
}

// testName returns the name go test would run for a misspelled test name.
func testName(name string) (string, bool) {
	var rest string

	switch {
	case strings.HasPrefix(name, "test"):
		rest = name[len("test"):]

	case strings.HasPrefix(name, "Test"):
		rest = name[len("Test"):]

		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsLower(r) {
			return "", false // run by go test
		}

	default:
		return "", false
	}

	if rest == "" {
		return "Test", true
	}

	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError {
		return "", false
	}

	return "Test" + string(unicode.ToUpper(r)) + rest[size:], true
}

// testingParam returns the single *testing.T parameter of fd.
func testingParam(info *types.Info, fd *ast.FuncDecl) (*types.Var, bool) {
	params := fd.Type.Params.List
	if len(params) != 1 || len(params[0].Names) != 1 {
		return nil, false
	}

	v, ok := info.Defs[params[0].Names[0]].(*types.Var)
	if !ok || v.Name() == "_" {
		return nil, false
	}

	ptr, ok := v.Type().(*types.Pointer)
	if !ok {
		return nil, false
	}

	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return nil, false
	}

	obj := named.Obj()

	return v, obj.Pkg() != nil && obj.Pkg().Path() == "testing" && obj.Name() == "T"
}

// used reports whether v is referenced in the unit.
func used(p *match.Pass, v *types.Var) bool {
	for c := range p.Unit.Cursor.Preorder((*ast.Ident)(nil)) {
		if p.Info().Uses[c.Node().(*ast.Ident)] == v {
			return true
		}
	}

	return false
}

// referenced reports whether fn is referenced anywhere in the package.
func referenced(p *match.Pass, fn *types.Func) bool {
	for _, obj := range p.Info().Uses {
		if obj == fn {
			return true
		}
	}

	return false
}

func (rule) Verify(p *match.Pass, m *match.Match) verify.Verdict {
	rename := m.Data.(candidate).rename

	return verify.First(
		verify.Unique(p.Package.Types.Scope(), rename),
		renamedAlike(p, p.Node(m.Node).(*ast.FuncDecl), rename),
	)
}

// renamedAlike checks that no other function of the package would be renamed to name.
func renamedAlike(p *match.Pass, fd *ast.FuncDecl, name string) verify.Verdict {
	for _, u := range p.Package.Units {
		for _, decl := range u.File.Decls {
			other, ok := decl.(*ast.FuncDecl)
			if !ok || other == fd || other.Recv != nil {
				continue
			}

			if rename, ok := testName(other.Name.Name); ok && rename == name {
				return verify.Unsafe(verify.Collision, "%s would also be renamed to %s", other.Name.Name, name)
			}
		}
	}

	return verify.OK()
}

func (r rule) Report(p *match.Pass, ms []*match.Match) match.Finding {
	m := ms[0]
	fd := p.Node(m.Node).(*ast.FuncDecl)
	cand := m.Data.(candidate)

	rename := patch.NewBuilder("Rename to " + cand.rename).Replace(fd.Name, cand.rename)

	skip := fmt.Sprintf("\n\t%s.Skip(%s)", cand.param, strconv.Quote(r.skipMessage))
	skipped := patch.NewBuilder("Rename to "+cand.rename+" and skip").
		Replace(fd.Name, cand.rename).
		ReplaceRange(fd.Body.Lbrace+1, fd.Body.Lbrace+1, skip)

	return match.Finding{
		Message: fmt.Sprintf("Function %s is not run by go test; rename it to %s", fd.Name.Name, cand.rename),
		Fixes:   []*patch.Builder{rename, skipped},
	}
}
