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

// Package narrowing reports compound assignments whose operand is converted
// to a narrower type before the operation.
//
// In `x op= T(y)` the conversion truncates y, while the operation was
// likely meant to be performed in the wider type of y: `x = T(W(x) op y)`.
package narrowing

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/go-toolsmith/astp"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Name is the rule name.
const Name = "narrowing"

type rule struct {
	// floats also reports conversions from floating point types.
	floats bool
}

// New creates the rule. The option "floats" (default true) also reports
// conversions of floating point values to integers or float32.
func New(flags config.Flags) (match.Rule, error) {
	floats, err := flags.Bool("floats", true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return rule{floats: floats}, nil
}

func (rule) Info() match.Info {
	return match.Info{
		Name:     Name,
		Doc:      "compound assignment converts its operand to a narrower type",
		Severity: report.Warning,
		Fixable:  true,
	}
}

func (rule) Nodes() []ast.Node { return []ast.Node{(*ast.AssignStmt)(nil)} }

// narrowed is the payload of a match.
type narrowed struct {
	conv *ast.CallExpr
	wide *types.Basic
	op   token.Token
}

func (r rule) Match(p *match.Pass, c inspector.Cursor) (match.Match, bool) {
	stmt := c.Node().(*ast.AssignStmt)
	if len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
		return match.Match{}, false
	}

	op, ok := binaryOp(stmt.Tok)
	if !ok || !operand(stmt.Lhs[0]) {
		return match.Match{}, false
	}

	conv, ok := conversion(stmt.Rhs[0])
	if !ok {
		return match.Match{}, false
	}

	info := p.Info()

	if tv, ok := info.Types[conv.Fun]; !ok || !tv.IsType() {
		return match.Match{}, false // not a conversion
	}

	arg := conv.Args[0]

	tv, ok := info.Types[arg]
	if !ok || tv.Value != nil || !model.Valid(tv.Type) {
		return match.Match{}, false // constant or unresolved
	}

	wide, ok := tv.Type.(*types.Basic)
	if !ok {
		return match.Match{}, false
	}

	narrow, ok := p.Resolver().TypeOf(conv)
	if !ok {
		return match.Match{}, false
	}

	target, ok := narrow.Underlying().(*types.Basic)
	if !ok || !r.narrows(p.Package.Sizes, wide, target) {
		return match.Match{}, false
	}

	m := match.Match{Data: narrowed{conv: conv, wide: wide, op: op}}
	m.Capture("x", c.ChildAt(edge.AssignStmt_Lhs, 0))

	return m, true
}

// operand reports whether x has the shape of a variable, field, element or
// pointer indirection, so it can be spelled twice in the rewrite.
func operand(x ast.Expr) bool {
	x = ast.Unparen(x)

	return astp.IsIdent(x) || astp.IsSelectorExpr(x) || astp.IsIndexExpr(x) || astp.IsStarExpr(x)
}

// conversion returns rhs when it has the shape `T(y)` or `pkg.T(y)`.
func conversion(rhs ast.Expr) (*ast.CallExpr, bool) {
	rhs = ast.Unparen(rhs)
	if !astp.IsCallExpr(rhs) {
		return nil, false
	}

	call := rhs.(*ast.CallExpr)
	if len(call.Args) != 1 || call.Ellipsis.IsValid() {
		return nil, false
	}

	fun := ast.Unparen(call.Fun)

	return call, astp.IsIdent(fun) || astp.IsSelectorExpr(fun)
}

// narrows reports whether converting a value of type wide to narrow may lose range.
func (r rule) narrows(sizes types.Sizes, wide, narrow *types.Basic) bool {
	wi, ni := wide.Info(), narrow.Info()

	switch {
	case wi&types.IsInteger != 0 && ni&types.IsInteger != 0:
		return sizes.Sizeof(wide) > sizes.Sizeof(narrow)

	case !r.floats || wi&types.IsFloat == 0:
		return false

	case ni&types.IsInteger != 0:
		return true

	case ni&types.IsFloat != 0:
		return sizes.Sizeof(wide) > sizes.Sizeof(narrow)
	}

	return false
}

// binaryOp returns the operator of an arithmetic compound assignment. Shifts
// are excluded, their right operand is a count.
func binaryOp(tok token.Token) (token.Token, bool) {
	switch tok {
	case token.ADD_ASSIGN:
		return token.ADD, true
	case token.SUB_ASSIGN:
		return token.SUB, true
	case token.MUL_ASSIGN:
		return token.MUL, true
	case token.QUO_ASSIGN:
		return token.QUO, true
	case token.REM_ASSIGN:
		return token.REM, true
	case token.AND_ASSIGN:
		return token.AND, true
	case token.OR_ASSIGN:
		return token.OR, true
	case token.XOR_ASSIGN:
		return token.XOR, true
	case token.AND_NOT_ASSIGN:
		return token.AND_NOT, true
	}

	return token.ILLEGAL, false
}

func (rule) Verify(p *match.Pass, m *match.Match) verify.Verdict {
	n := m.Data.(narrowed)
	x := p.Captured(m, "x").(ast.Expr)
	wide := n.wide.Name()

	return verify.First(
		verify.Pure(p.Info(), x),
		verify.NameFree(p.Resolver(), x.Pos(), wide, types.Universe.Lookup(wide)),
	)
}

func (rule) Report(p *match.Pass, ms []*match.Match) match.Finding {
	m := ms[0]
	n := m.Data.(narrowed)
	stmt := p.Node(m.Node)
	x := p.Captured(m, "x").(ast.Expr)

	rewritten := render(p, x, n)

	return match.Finding{
		Message: fmt.Sprintf("Compound assignment converts %s operand to %s before the operation; did you mean %s?",
			n.wide.Name(), p.Unit.Source(n.conv.Fun), rewritten),
		Fixes: []*patch.Builder{patch.NewBuilder("Perform the operation in " + n.wide.Name()).Replace(stmt, rewritten)},
	}
}

// render returns `x = T(W(x) op y)`.
func render(p *match.Pass, x ast.Expr, n narrowed) string {
	lhs := p.Unit.Source(x)

	y := p.Unit.Source(n.conv.Args[0])
	if arg := n.conv.Args[0]; astp.IsBinaryExpr(arg) && arg.(*ast.BinaryExpr).Op.Precedence() <= n.op.Precedence() {
		y = "(" + y + ")"
	}

	return fmt.Sprintf("%s = %s(%s(%s) %s %s)", lhs, p.Unit.Source(n.conv.Fun), n.wide.Name(), lhs, n.op, y)
}
