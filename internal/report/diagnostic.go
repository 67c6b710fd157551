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

// Package report defines diagnostics and their deterministic ordering.
package report

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Span is a source range with its resolved positions.
type Span struct {
	Pos, End      token.Pos
	Start, Finish token.Position
}

// SpanOf resolves the range [pos, end) in u.
func SpanOf(u *model.Unit, pos, end token.Pos) Span {
	return Span{Pos: pos, End: end, Start: u.Position(pos), Finish: u.Position(end)}
}

// NodeSpan resolves the range of n in u.
func NodeSpan(u *model.Unit, n ast.Node) Span {
	return SpanOf(u, n.Pos(), n.End())
}

// Related is a secondary location of a [Diagnostic].
type Related struct {
	Span
	Message string
}

// Diagnostic is one reported issue.
type Diagnostic struct {
	Span

	Rule     string
	Severity Severity
	Message  string

	// Fixes are the candidate rewrites in choice order. None means advisory-only.
	Fixes []patch.Fix

	// Related lists the further occurrences of the issue.
	Related []Related

	// Withheld is the reason no fix is offered, if verification failed.
	Withheld verify.Verdict
}

// Advisory reports whether the diagnostic offers no fix.
func (d *Diagnostic) Advisory() bool {
	return len(d.Fixes) == 0
}

// String formats the diagnostic as "path:line:col: severity: message (rule)".
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", d.Start, d.Severity, d.Message, d.Rule)
}

// Occurrences splits nodes into the primary occurrence, the first in source
// order, and the remaining ones.
func Occurrences(nodes []ast.Node) (ast.Node, []ast.Node) {
	if len(nodes) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b ast.Node) int {
		return cmp.Or(cmp.Compare(a.Pos(), b.Pos()), cmp.Compare(a.End(), b.End()))
	})

	return sorted[0], sorted[1:]
}

// Compare orders diagnostics by file, offset, end, rule and message.
func Compare(a, b *Diagnostic) int {
	return cmp.Or(
		strings.Compare(a.Start.Filename, b.Start.Filename),
		cmp.Compare(a.Start.Offset, b.Start.Offset),
		cmp.Compare(a.Finish.Offset, b.Finish.Offset),
		strings.Compare(a.Rule, b.Rule),
		strings.Compare(a.Message, b.Message),
	)
}

// Sort orders diagnostics deterministically.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int { return Compare(&a, &b) })
}

// Dedup removes exact duplicates from sorted diagnostics.
func Dedup(diags []Diagnostic) []Diagnostic {
	return slices.CompactFunc(diags, func(a, b Diagnostic) bool { return Compare(&a, &b) == 0 })
}

// Names formats a list of names for a message, e.g. "'a', 'b' and 'c'".
func Names(names []string) string {
	var all strings.Builder

	for i, name := range names {
		if i > 0 {
			separator := ", "
			if i == len(names)-1 {
				separator = " and "
			}

			all.WriteString(separator) // ignore error
		}

		all.WriteByte('\'')   // ignore error
		all.WriteString(name) // ignore error
		all.WriteByte('\'')   // ignore error
	}

	return all.String()
}
