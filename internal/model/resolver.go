// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package model

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Resolver answers semantic queries against the program model.
//
// A false result means the front end could not resolve the query. Rules
// treat this as "no match" instead of assuming complete information.
type Resolver interface {
	// ObjectOf returns the object an identifier defines or refers to.
	ObjectOf(id *ast.Ident) (types.Object, bool)

	// TypeOf returns the valid type of an expression.
	TypeOf(e ast.Expr) (types.Type, bool)

	// LookupAt returns the object a simple name binds to at pos, nil when unbound.
	LookupAt(pos token.Pos, name string) types.Object

	// ScopeAt returns the innermost scope containing pos.
	ScopeAt(pos token.Pos) *types.Scope
}

var _ Resolver = (*Package)(nil)

// ObjectOf implements [Resolver].
func (p *Package) ObjectOf(id *ast.Ident) (types.Object, bool) {
	switch obj := p.Info.ObjectOf(id).(type) {
	case nil:
		return nil, false

	case *types.PkgName, *types.Builtin, *types.Label: // typeless objects
		return obj, true

	default:
		if !Valid(obj.Type()) {
			return nil, false
		}

		return obj, true
	}
}

// TypeOf implements [Resolver].
func (p *Package) TypeOf(e ast.Expr) (types.Type, bool) {
	t := p.Info.TypeOf(e)
	if !Valid(t) {
		return nil, false
	}

	return t, true
}

// LookupAt implements [Resolver].
func (p *Package) LookupAt(pos token.Pos, name string) types.Object {
	scope := p.ScopeAt(pos)
	if scope == nil {
		return nil
	}

	_, obj := scope.LookupParent(name, pos)

	return obj
}

// ScopeAt implements [Resolver].
func (p *Package) ScopeAt(pos token.Pos) *types.Scope {
	if p.Types == nil {
		return nil
	}

	return p.Types.Scope().Innermost(pos)
}

// Valid reports whether t is a resolved type.
//
// Types built from unresolved imports are invalid, also when used as an
// element, pointer base or embedded type.
func Valid(t types.Type) bool {
	switch t := t.(type) {
	case nil:
		return false

	case *types.Basic:
		return t.Kind() != types.Invalid

	case *types.Pointer:
		return Valid(t.Elem())

	case *types.Slice:
		return Valid(t.Elem())

	case *types.Array:
		return Valid(t.Elem())

	case *types.Map:
		return Valid(t.Key()) && Valid(t.Elem())

	case *types.Chan:
		return Valid(t.Elem())

	default:
		return true
	}
}
