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

package patch

import (
	"cmp"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/edge"

	"fillmore-labs.com/patchcheck/internal/model"
)

// ImportPath returns the unquoted path of an import spec.
func ImportPath(spec *ast.ImportSpec) string {
	p, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return ""
	}

	return p
}

// Qualifier returns the name that qualifies members of the package importPath
// in u and the object that name must denote at the use site: the existing
// import, or nil when an import of the package, named name, is still to be added.
func Qualifier(u *model.Unit, info *types.Info, importPath, name string) (string, types.Object) {
	for _, spec := range u.File.Imports {
		if ImportPath(spec) != importPath || isDot(spec) || isBlank(spec) {
			continue
		}

		if pn := info.PkgNameOf(spec); pn != nil {
			return pn.Name(), pn
		}
	}

	return name, nil
}

// ImportEdits computes the edits realizing import changes in one unit.
//
// applied are the sorted edits the changes accompany. An import listed in
// remove is deleted only when every use of it lies inside one of them. A dot
// import that is removed while the same path is added is rewritten in place.
func ImportEdits(u *model.Unit, info *types.Info, add []Import, remove []string, applied []Edit) []Edit {
	wanted := make(map[string]Import, len(add))
	for _, imp := range add {
		if _, ok := wanted[imp.Path]; !ok {
			wanted[imp.Path] = imp
		}
	}

	var (
		edits     []Edit
		removed   = make(map[*ast.ImportSpec]bool)
		converted = make(map[string]bool)
	)

	for _, p := range sortedUnique(remove) {
		for _, spec := range u.File.Imports {
			if ImportPath(spec) != p || !unused(u, info, spec, applied) {
				continue
			}

			if imp, ok := wanted[p]; ok && isDot(spec) && imp.Name == "" && !converted[p] && !hasImport(u.File, imp, removed) {
				// `. "path"` becomes `"path"`
				edits = append(edits, Edit{Pos: spec.Name.Pos(), End: spec.Path.Pos()})
				converted[p] = true

				continue
			}

			removed[spec] = true
		}
	}

	deletions, deleted := deleteSpecs(u, removed)
	edits = append(edits, deletions...)

	imports := make([]Import, 0, len(wanted))
	for _, imp := range wanted {
		if converted[imp.Path] || hasImport(u.File, imp, removed) {
			continue
		}

		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b Import) int { return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Name, b.Name)) })

	return append(edits, insertImports(u, imports, removed, deleted)...)
}

func isDot(spec *ast.ImportSpec) bool { return spec.Name != nil && spec.Name.Name == "." }

func isBlank(spec *ast.ImportSpec) bool { return spec.Name != nil && spec.Name.Name == "_" }

func sortedUnique(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)

	return slices.Compact(s)
}

// hasImport reports whether a remaining spec already satisfies imp.
func hasImport(f *ast.File, imp Import, removed map[*ast.ImportSpec]bool) bool {
	for _, spec := range f.Imports {
		if removed[spec] || isDot(spec) || isBlank(spec) || ImportPath(spec) != imp.Path {
			continue
		}

		if imp.Name == "" || spec.Name != nil && spec.Name.Name == imp.Name {
			return true
		}
	}

	return false
}

// unused reports whether every use of the import spec is covered by applied.
func unused(u *model.Unit, info *types.Info, spec *ast.ImportSpec, applied []Edit) bool {
	if isBlank(spec) {
		return false
	}

	pn := info.PkgNameOf(spec)
	if pn == nil {
		return false
	}

	imported, dot := pn.Imported(), isDot(spec)

	for c := range u.Cursor.Preorder((*ast.Ident)(nil)) {
		id := c.Node().(*ast.Ident)

		obj, ok := info.Uses[id]
		if !ok {
			continue
		}

		if dot {
			if kind, _ := c.ParentEdge(); kind == edge.SelectorExpr_Sel {
				continue
			}

			if obj.Pkg() != imported || obj.Parent() != imported.Scope() {
				continue
			}
		} else if obj != pn {
			continue
		}

		if !Covers(applied, id.Pos()) {
			return false
		}
	}

	return true
}

// specEnd returns the end of a spec including its line comment.
func specEnd(spec *ast.ImportSpec) token.Pos {
	if spec.Comment != nil && spec.Comment.End() > spec.End() {
		return spec.Comment.End()
	}

	return spec.End()
}

// deleteSpecs removes import specs, and their declaration once it becomes empty.
func deleteSpecs(u *model.Unit, removed map[*ast.ImportSpec]bool) ([]Edit, map[*ast.GenDecl]bool) {
	if len(removed) == 0 {
		return nil, nil
	}

	var (
		edits   []Edit
		deleted = make(map[*ast.GenDecl]bool)
	)

	for _, decl := range u.File.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}

		all := true

		for _, spec := range gen.Specs {
			if !removed[spec.(*ast.ImportSpec)] {
				all = false

				break
			}
		}

		if all {
			edits = append(edits, deleteDecl(u, gen))
			deleted[gen] = true

			continue
		}

		// Remaining specs mean the declaration is parenthesized.
		prev := gen.Lparen + 1
		for _, spec := range gen.Specs {
			spec := spec.(*ast.ImportSpec)

			end := specEnd(spec)
			if removed[spec] {
				edits = append(edits, Edit{Pos: prev, End: end})
			}

			prev = end
		}
	}

	return edits, deleted
}

// deleteDecl removes a declaration, collapsing the blank lines around it.
func deleteDecl(u *model.Unit, decl *ast.GenDecl) Edit {
	pos, end := decl.Pos(), decl.End()
	if decl.Doc != nil {
		pos = decl.Doc.Pos()
	}

	start, ok1 := u.Offset(pos)
	stop, ok2 := u.Offset(end)

	if !ok1 || !ok2 {
		return Edit{Pos: pos, End: end}
	}

	before := 0
	for start-before > 0 && u.Content[start-before-1] == '\n' {
		before++
	}

	after := 0
	for stop+after < len(u.Content) && u.Content[stop+after] == '\n' {
		after++
	}

	keep := min(max(before, after), 2)

	return Edit{
		Pos:     pos - token.Pos(before),
		End:     end + token.Pos(after),
		NewText: strings.Repeat("\n", keep),
	}
}

// insertImports adds import specs in their conventional position, skipping
// declarations and specs that are being deleted.
func insertImports(u *model.Unit, imports []Import, removed map[*ast.ImportSpec]bool, deleted map[*ast.GenDecl]bool) []Edit {
	if len(imports) == 0 {
		return nil
	}

	texts := make([]string, len(imports))
	for i, imp := range imports {
		texts[i] = strconv.Quote(imp.Path)
		if imp.Name != "" {
			texts[i] = imp.Name + " " + texts[i]
		}
	}

	var decl *ast.GenDecl

	for _, d := range u.File.Decls {
		if gen, ok := d.(*ast.GenDecl); ok && gen.Tok == token.IMPORT && !deleted[gen] {
			decl = gen

			break
		}
	}

	switch {
	case decl == nil:
		pos := u.File.Name.End()
		if len(texts) == 1 {
			return []Edit{{Pos: pos, End: pos, NewText: "\n\nimport " + texts[0]}}
		}

		return []Edit{{Pos: pos, End: pos, NewText: "\n\nimport (\n\t" + strings.Join(texts, "\n\t") + "\n)"}}

	case !decl.Lparen.IsValid():
		pos := decl.End()

		return []Edit{{Pos: pos, End: pos, NewText: "\nimport " + strings.Join(texts, "\nimport ")}}

	case len(decl.Specs) == 0:
		pos := decl.Lparen + 1

		return []Edit{{Pos: pos, End: pos, NewText: "\n\t" + strings.Join(texts, "\n\t") + "\n"}}
	}

	var (
		kept  []*ast.ImportSpec
		edits []Edit
	)

	for _, spec := range decl.Specs {
		if spec := spec.(*ast.ImportSpec); !removed[spec] {
			kept = append(kept, spec)
		}
	}

	for i, imp := range imports {
		idx := slices.IndexFunc(kept, func(spec *ast.ImportSpec) bool { return ImportPath(spec) > imp.Path })
		if idx < 0 {
			pos := specEnd(kept[len(kept)-1])
			edits = append(edits, Edit{Pos: pos, End: pos, NewText: "\n\t" + texts[i]})

			continue
		}

		pos := kept[idx].Pos()
		if kept[idx].Doc != nil {
			pos = kept[idx].Doc.Pos()
		}

		edits = append(edits, Edit{Pos: pos, End: pos, NewText: texts[i] + "\n\t"})
	}

	return edits
}
