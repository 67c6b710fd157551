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

package obsolete

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// common are the methods of both fs.FileInfo and fs.DirEntry.
var common = map[string]bool{"Name": true, "IsDir": true}

// dirEntryCompatible checks that the result of the matched ioutil.ReadDir call
// is a new variable that is only ranged over, indexed or measured, with its
// elements used for common methods only.
func dirEntryCompatible(p *match.Pass, m *match.Match) verify.Verdict {
	fn := m.Node.Enclosing(p.Package.Inspector, (*ast.FuncDecl)(nil), (*ast.FuncLit)(nil))
	if !fn.Valid() {
		return verify.Unsafe(verify.TypeConflict, "ioutil.ReadDir is called outside of a function")
	}

	sel := p.Cursor(m.Node)
	if kind, _ := sel.ParentEdge(); kind != edge.CallExpr_Fun {
		return verify.Unsafe(verify.TypeConflict, "ioutil.ReadDir is used as a value")
	}

	call := sel.Parent()
	if kind, index := call.ParentEdge(); kind != edge.AssignStmt_Rhs || index != 0 {
		return verify.Unsafe(verify.TypeConflict, "result of ioutil.ReadDir is not assigned to a variable")
	}

	stmt := call.Parent().Node().(*ast.AssignStmt)
	if stmt.Tok != token.DEFINE {
		return verify.Unsafe(verify.TypeConflict, "result of ioutil.ReadDir is assigned to an existing variable")
	}

	id, ok := stmt.Lhs[0].(*ast.Ident)
	if !ok {
		return verify.Unsafe(verify.TypeConflict, "result of ioutil.ReadDir is not assigned to a variable")
	}

	if id.Name == "_" {
		return verify.OK()
	}

	obj := p.Info().Defs[id]
	if obj == nil {
		return verify.Unsafe(verify.TypeConflict, "%s is declared as []fs.FileInfo before", id.Name)
	}

	// a local variable is only visible in its function
	for c := range p.Cursor(fn).Preorder((*ast.Ident)(nil)) {
		if p.Info().Uses[c.Node().(*ast.Ident)] != obj {
			continue
		}

		if !compatibleUse(p, c) {
			return verify.Unsafe(verify.TypeConflict, "%s is used as []fs.FileInfo", id.Name)
		}
	}

	return verify.OK()
}

// compatibleUse reports whether the use of the result at c works with []fs.DirEntry.
func compatibleUse(p *match.Pass, c inspector.Cursor) bool {
	switch kind, _ := c.ParentEdge(); kind {
	case edge.CallExpr_Args:
		return isBuiltin(p.Info(), c.Parent().Node().(*ast.CallExpr), "len")

	case edge.IndexExpr_X:
		return commonMethodCall(c.Parent())

	case edge.RangeStmt_X:
		return compatibleRange(p, c.Parent())
	}

	return false
}

func compatibleRange(p *match.Pass, c inspector.Cursor) bool {
	rs := c.Node().(*ast.RangeStmt)
	if rs.Value == nil {
		return true
	}

	v, ok := rs.Value.(*ast.Ident)
	if !ok || rs.Tok != token.DEFINE {
		return false
	}

	if v.Name == "_" {
		return true
	}

	elem := p.Info().Defs[v]
	if elem == nil {
		return false
	}

	for vc := range c.Preorder((*ast.Ident)(nil)) {
		if p.Info().Uses[vc.Node().(*ast.Ident)] == elem && !commonMethodCall(vc) {
			return false
		}
	}

	return true
}

// commonMethodCall reports whether c is the receiver of a call of a method
// that fs.FileInfo and fs.DirEntry have in common.
func commonMethodCall(c inspector.Cursor) bool {
	if kind, _ := c.ParentEdge(); kind != edge.SelectorExpr_X {
		return false
	}

	sel := c.Parent()
	if !common[sel.Node().(*ast.SelectorExpr).Sel.Name] {
		return false
	}

	kind, _ := sel.ParentEdge()

	return kind == edge.CallExpr_Fun
}

func isBuiltin(info *types.Info, call *ast.CallExpr, name string) bool {
	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return false
	}

	b, ok := info.Uses[id].(*types.Builtin)

	return ok && b.Name() == name
}
