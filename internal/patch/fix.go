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

// Package patch builds and applies textual fixes.
//
// A [Fix] is computed against the original, unmodified source: its edits never
// overlap and import changes are materialized only when the set of fixes to
// apply is known.
package patch

import (
	"fmt"
	"go/ast"
	"go/token"
	"slices"
)

// Edit replaces the source range [Pos, End) with NewText. Pos == End is an insertion.
type Edit struct {
	Pos, End token.Pos
	NewText  string
}

// Import is an import spec a fix needs. An empty Name imports under the package name.
type Import struct {
	Name, Path string
}

// Fix is one candidate rewrite.
type Fix struct {
	// Title describes the rewrite for the user.
	Title string

	// Edits are sorted and non-overlapping.
	Edits []Edit

	// AddImports are added to every file the fix edits unless already present.
	AddImports []Import

	// RemoveImports are removed from every file the fix edits once no use remains.
	RemoveImports []string
}

// Builder accumulates the edits of a [Fix].
type Builder struct {
	fix Fix
}

// NewBuilder starts a fix with the given title.
func NewBuilder(title string) *Builder {
	return &Builder{fix: Fix{Title: title}}
}

// Replace replaces the source text of n.
func (b *Builder) Replace(n ast.Node, text string) *Builder {
	return b.ReplaceRange(n.Pos(), n.End(), text)
}

// ReplaceRange replaces the source range [pos, end).
func (b *Builder) ReplaceRange(pos, end token.Pos, text string) *Builder {
	b.fix.Edits = append(b.fix.Edits, Edit{Pos: pos, End: end, NewText: text})

	return b
}

// InsertBefore inserts text immediately before n.
func (b *Builder) InsertBefore(n ast.Node, text string) *Builder {
	return b.ReplaceRange(n.Pos(), n.Pos(), text)
}

// InsertAfter inserts text immediately after n.
func (b *Builder) InsertAfter(n ast.Node, text string) *Builder {
	return b.ReplaceRange(n.End(), n.End(), text)
}

// Delete removes the source text of n.
func (b *Builder) Delete(n ast.Node) *Builder {
	return b.ReplaceRange(n.Pos(), n.End(), "")
}

// AddImport requests an import of path, named name when not empty.
func (b *Builder) AddImport(path, name string) *Builder {
	imp := Import{Name: name, Path: path}
	if !slices.Contains(b.fix.AddImports, imp) {
		b.fix.AddImports = append(b.fix.AddImports, imp)
	}

	return b
}

// RemoveImport requests removal of path once the rewrite leaves it unused.
func (b *Builder) RemoveImport(path string) *Builder {
	if !slices.Contains(b.fix.RemoveImports, path) {
		b.fix.RemoveImports = append(b.fix.RemoveImports, path)
	}

	return b
}

// Merge adds all edits and import changes of other.
func (b *Builder) Merge(other *Builder) *Builder {
	if other == nil {
		return b
	}

	b.fix.Edits = append(b.fix.Edits, other.fix.Edits...)

	for _, imp := range other.fix.AddImports {
		b.AddImport(imp.Path, imp.Name)
	}

	for _, path := range other.fix.RemoveImports {
		b.RemoveImport(path)
	}

	return b
}

// Empty reports whether the builder holds no edits.
func (b *Builder) Empty() bool {
	return len(b.fix.Edits) == 0
}

// Build validates and returns the fix. Overlapping edits yield [ErrOverlap].
func (b *Builder) Build() (Fix, error) {
	fix := b.fix
	fix.Edits = slices.Clone(fix.Edits)

	edits, err := SortEdits(fix.Edits)
	if err != nil {
		return Fix{}, fmt.Errorf("fix %q: %w", fix.Title, err)
	}

	fix.Edits = edits

	return fix, nil
}

// SortEdits returns edits in position order with duplicates removed, or
// [ErrOverlap] when two of them conflict.
func SortEdits(edits []Edit) ([]Edit, error) {
	offsets := make([]OffsetEdit, len(edits))
	for i, e := range edits {
		offsets[i] = OffsetEdit{Start: int(e.Pos), End: int(e.End), NewText: e.NewText}
	}

	for _, e := range offsets {
		if e.End < e.Start {
			return nil, fmt.Errorf("%w: end %d before start %d", ErrOutOfRange, e.End, e.Start)
		}
	}

	sorted, err := normalize(offsets)
	if err != nil {
		return nil, err
	}

	result := make([]Edit, len(sorted))
	for i, e := range sorted {
		result[i] = Edit{Pos: token.Pos(e.Start), End: token.Pos(e.End), NewText: e.NewText}
	}

	return result, nil
}

// Conflict reports whether any edit of a overlaps any edit of b.
func Conflict(a, b []Edit) bool {
	all := make([]Edit, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)

	_, err := SortEdits(all)

	return err != nil
}

// Covers reports whether pos lies inside a non-empty edit.
func Covers(edits []Edit, pos token.Pos) bool {
	return slices.ContainsFunc(edits, func(e Edit) bool { return e.Pos <= pos && pos < e.End })
}
