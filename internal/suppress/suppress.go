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

// Package suppress finds the `//nolint` directives that silence rules.
//
// A directive in the doc comment of a declaration, type or value spec or
// struct field covers that node, one in the package doc covers the file and
// a directive anywhere on a line covers diagnostics anchored on that line.
package suppress

import (
	"go/ast"
	"go/token"
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/patchcheck/internal/model"
)

// Suite is the name that suppresses every rule of this linter.
const Suite = "patchcheck"

var nolintPattern = regexp.MustCompile(`^//\s*nolint(?::([\w,-]+))?(?:\s|$)`)

// scope is a suppressed source range.
type scope struct {
	pos, end token.Pos
	names    []string
}

// Index holds the suppression scopes of one unit.
type Index struct {
	unit   *model.Unit
	scopes []scope
	lines  map[int][]string
}

// Build indexes all suppression scopes of u.
func Build(u *model.Unit) *Index {
	x := &Index{unit: u, lines: make(map[int][]string)}

	for _, group := range u.File.Comments {
		for _, c := range group.List {
			if names, ok := Directive(c); ok {
				line := u.Line(c.Pos())
				x.lines[line] = append(x.lines[line], names...)
			}
		}
	}

	if names := groupNames(u.File.Doc); names != nil {
		x.scopes = append(x.scopes, scope{u.File.FileStart, u.File.FileEnd, names})
	}

	types := []ast.Node{(*ast.FuncDecl)(nil), (*ast.GenDecl)(nil), (*ast.TypeSpec)(nil), (*ast.ValueSpec)(nil), (*ast.Field)(nil)}
	for c := range u.Cursor.Preorder(types...) {
		var doc, comment *ast.CommentGroup

		switch n := c.Node().(type) {
		case *ast.FuncDecl:
			doc = n.Doc

		case *ast.GenDecl:
			doc = n.Doc

		case *ast.TypeSpec:
			doc, comment = n.Doc, n.Comment

		case *ast.ValueSpec:
			doc, comment = n.Doc, n.Comment

		case *ast.Field:
			doc, comment = n.Doc, n.Comment
		}

		names := slices.Concat(groupNames(doc), groupNames(comment))
		if len(names) == 0 {
			continue
		}

		x.scopes = append(x.scopes, scope{c.Node().Pos(), c.Node().End(), names})
	}

	return x
}

// Suppressed reports whether a diagnostic of rule anchored at pos is suppressed.
func (x *Index) Suppressed(rule string, pos token.Pos) bool {
	if x == nil {
		return false
	}

	if covers(x.lines[x.unit.Line(pos)], rule) {
		return true
	}

	for _, s := range x.scopes {
		if s.pos <= pos && pos < s.end && covers(s.names, rule) {
			return true
		}
	}

	return false
}

// Directive parses a `//nolint` comment, returning the lower-cased names it lists.
// A bare `//nolint` yields "all".
func Directive(c *ast.Comment) ([]string, bool) {
	m := nolintPattern.FindStringSubmatch(c.Text)
	if m == nil {
		return nil, false
	}

	if m[1] == "" {
		return []string{"all"}, true
	}

	var names []string

	for name := range strings.SplitSeq(m[1], ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			names = append(names, name)
		}
	}

	return names, len(names) > 0
}

func groupNames(group *ast.CommentGroup) []string {
	if group == nil {
		return nil
	}

	var names []string

	for _, c := range group.List {
		if n, ok := Directive(c); ok {
			names = append(names, n...)
		}
	}

	return names
}

func covers(names []string, rule string) bool {
	return slices.ContainsFunc(names, func(name string) bool {
		return name == "all" || name == Suite || name == strings.ToLower(rule)
	})
}
