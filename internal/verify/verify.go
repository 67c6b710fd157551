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

// Package verify decides whether a proposed rewrite preserves semantics.
//
// Checks run against the fully type-checked package. A failed check
// withholds the fix; the diagnostic is still reported.
package verify

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/patchcheck/internal/model"
)

// NameFree checks that the simple name, written at pos, denotes want.
//
// The name must be unbound at pos or already bound to want. A nil want
// requires the name to be unbound, for qualifiers of imports still to be added.
func NameFree(r model.Resolver, pos token.Pos, name string, want types.Object) Verdict {
	obj := r.LookupAt(pos, name)
	if obj == nil || obj == want || samePackage(obj, want) {
		return OK()
	}

	return Unsafe(Collision, "%s already refers to %s", name, describe(obj))
}

// samePackage reports whether a and b are imports of the same package.
func samePackage(a, b types.Object) bool {
	pa, ok1 := a.(*types.PkgName)
	pb, ok2 := b.(*types.PkgName)

	return ok1 && ok2 && pa.Imported() == pb.Imported()
}

func describe(obj types.Object) string {
	switch obj := obj.(type) {
	case *types.PkgName:
		return "package " + obj.Imported().Path()

	case *types.Var:
		return "variable " + obj.Name()

	case *types.Func:
		return "function " + obj.Name()

	case *types.TypeName:
		return "type " + obj.Name()

	case *types.Const:
		return "constant " + obj.Name()

	default:
		return obj.Name()
	}
}

// ResolvesTo checks that the identifier binds to want.
func ResolvesTo(r model.Resolver, id *ast.Ident, want types.Object) Verdict {
	obj, ok := r.ObjectOf(id)
	if !ok {
		return Unsafe(Unresolved, "%s is not resolved", id.Name)
	}

	if obj != want {
		return Unsafe(Rebinding, "%s refers to %s", id.Name, describe(obj))
	}

	return OK()
}

// Unique checks that name can be declared in scope without colliding with a
// declaration in scope, its parents or its children.
func Unique(scope *types.Scope, name string) Verdict {
	for parent := scope; parent != nil; parent = parent.Parent() {
		if obj := parent.Lookup(name); obj != nil {
			return Unsafe(Collision, "%s is already declared as %s", name, describe(obj))
		}
	}

	if obj := lookupChildren(scope, name); obj != nil {
		return Unsafe(Shadowed, "%s is declared in an inner scope", name)
	}

	return OK()
}

// lookupChildren searches the scope tree below scope depth-first.
func lookupChildren(scope *types.Scope, name string) types.Object {
	for child := range scope.Children() {
		if obj := child.Lookup(name); obj != nil {
			return obj
		}

		if obj := lookupChildren(child, name); obj != nil {
			return obj
		}
	}

	return nil
}

// Pure checks that evaluating e has no side effects, so it can be evaluated twice.
//
// Calls are impure except type conversions and side-effect free builtins;
// channel receives are impure.
func Pure(info *types.Info, e ast.Expr) Verdict {
	pure := true

	ast.Inspect(e, func(n ast.Node) bool {
		if !pure {
			return false
		}

		switch n := n.(type) {
		case *ast.CallExpr:
			if !pureCall(info, n) {
				pure = false
			}

		case *ast.UnaryExpr:
			if n.Op == token.ARROW {
				pure = false
			}

		case *ast.FuncLit:
			return false // not evaluated
		}

		return pure
	})

	if !pure {
		return Unsafe(SideEffect, "%s may have side effects", types.ExprString(e))
	}

	return OK()
}

func pureCall(info *types.Info, call *ast.CallExpr) bool {
	fun := ast.Unparen(call.Fun)

	if tv, ok := info.Types[fun]; ok && tv.IsType() {
		return true // conversion
	}

	var id *ast.Ident

	switch f := fun.(type) {
	case *ast.Ident:
		id = f

	case *ast.SelectorExpr:
		id = f.Sel
	}

	if id == nil {
		return false
	}

	b, ok := info.Uses[id].(*types.Builtin)
	if !ok {
		return false
	}

	switch b.Name() {
	case "len", "cap", "complex", "real", "imag", "min", "max", "Sizeof", "Alignof", "Offsetof":
		return true
	}

	return false
}
