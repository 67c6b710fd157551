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

// Package model wraps a parsed and type-checked Go package as the read-only
// program model the rules match against.
//
// The front end is external: syntax trees come from go/parser, types from go/types,
// reached through an analysis pass, go/packages or the test loaders.
package model

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/directive"
)

// ErrNoFileInfo is returned for a syntax tree without position information.
var ErrNoFileInfo = errors.New("file without position information")

// ReadFile returns the content of a source file.
type ReadFile func(filename string) ([]byte, error)

// Package is one type-checked package.
type Package struct {
	Fset      *token.FileSet
	Types     *types.Package
	Info      *types.Info
	Sizes     types.Sizes
	Units     []*Unit
	Inspector *inspector.Inspector

	// Incomplete is set when the front end reported errors; semantic
	// information may be missing for some nodes.
	Incomplete bool

	// Imported reads directives of imported declarations. Nil when unavailable.
	Imported directive.Source
}

// Config describes the front end results a [Package] is built from.
type Config struct {
	Fset       *token.FileSet
	Types      *types.Package
	Info       *types.Info
	Sizes      types.Sizes
	Files      []*ast.File
	ReadFile   ReadFile
	Inspector  *inspector.Inspector // optional, built from Files when nil
	Incomplete bool
	Imported   directive.Source
}

// New builds a [Package], reading the content of every file.
func New(c Config) (*Package, error) {
	in := c.Inspector
	if in == nil {
		in = inspector.New(c.Files)
	}

	sizes := c.Sizes
	if sizes == nil {
		sizes = types.SizesFor("gc", "amd64")
	}

	p := &Package{
		Fset:       c.Fset,
		Types:      c.Types,
		Info:       c.Info,
		Sizes:      sizes,
		Inspector:  in,
		Incomplete: c.Incomplete,
		Imported:   c.Imported,
	}

	cursors := make(map[*ast.File]inspector.Cursor, len(c.Files))
	for f := range in.Root().Children() {
		if file, ok := f.Node().(*ast.File); ok {
			cursors[file] = f
		}
	}

	for _, file := range c.Files {
		handle := c.Fset.File(file.FileStart)
		if handle == nil {
			return nil, fmt.Errorf("%s: %w", file.Name.Name, ErrNoFileInfo)
		}

		content, err := c.ReadFile(handle.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", handle.Name(), err)
		}

		cursor, ok := cursors[file]
		if !ok {
			return nil, fmt.Errorf("%s: file not in inspector: %w", handle.Name(), ErrNoFileInfo)
		}

		p.Units = append(p.Units, &Unit{
			Path:      handle.Name(),
			File:      file,
			Handle:    handle,
			Content:   content,
			Generated: ast.IsGenerated(file),
			Cursor:    cursor,
		})
	}

	return p, nil
}

// UnitOf returns the unit containing pos, or nil.
func (p *Package) UnitOf(pos token.Pos) *Unit {
	for _, u := range p.Units {
		if u.Contains(pos) {
			return u
		}
	}

	return nil
}

// Unit is one source file of a [Package].
type Unit struct {
	Path      string
	File      *ast.File
	Handle    *token.File
	Content   []byte
	Generated bool
	Cursor    inspector.Cursor
}

// Test reports whether the unit is a test file.
func (u *Unit) Test() bool {
	return strings.HasSuffix(u.Path, "_test.go")
}

// Contains reports whether pos lies within the unit.
func (u *Unit) Contains(pos token.Pos) bool {
	base := u.Handle.Base()

	return base <= int(pos) && int(pos) <= base+u.Handle.Size()
}

// Offset converts pos into a byte offset.
func (u *Unit) Offset(pos token.Pos) (int, bool) {
	if !pos.IsValid() || !u.Contains(pos) {
		return 0, false
	}

	return int(pos) - u.Handle.Base(), true
}

// Position returns the unadjusted source position of pos.
func (u *Unit) Position(pos token.Pos) token.Position {
	return u.Handle.PositionFor(pos, false)
}

// Line returns the line number of pos.
func (u *Unit) Line(pos token.Pos) int {
	return u.Handle.PositionFor(pos, false).Line
}

// Text returns the original source text of [pos, end).
func (u *Unit) Text(pos, end token.Pos) string {
	start, ok1 := u.Offset(pos)
	stop, ok2 := u.Offset(end)

	if !ok1 || !ok2 || stop < start || stop > len(u.Content) {
		return ""
	}

	return string(u.Content[start:stop])
}

// Source returns the original source text of a node.
func (u *Unit) Source(n ast.Node) string {
	return u.Text(n.Pos(), n.End())
}
