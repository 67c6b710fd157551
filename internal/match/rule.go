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

// Package match defines rules and finds their matches in a unit.
//
// A rule is stateless: [Rule.Match] inspects one node, [Rule.Verify] decides
// whether the rewrite of one match is safe and [Rule.Report] renders the
// message and the candidate fixes for all occurrences of one issue.
package match

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/patchcheck/internal/astutil"
	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/patch"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/verify"
)

// Info describes a rule.
type Info struct {
	// Name is the rule name used for configuration and suppression.
	Name string

	// Doc is a one-line summary.
	Doc string

	// Severity is the default severity.
	Severity report.Severity

	// Fixable is set when the rule offers fixes.
	Fixable bool
}

// Rule is one bug pattern.
type Rule interface {
	Info() Info

	// Nodes lists the node types Match is called for.
	Nodes() []ast.Node

	// Match inspects the node at c. It returns false for NoMatch.
	Match(p *Pass, c inspector.Cursor) (Match, bool)

	// Verify decides whether the rewrite of m preserves semantics.
	Verify(p *Pass, m *Match) verify.Verdict

	// Report renders the diagnostic message and candidate fixes for all
	// occurrences of one issue, in source order.
	Report(p *Pass, ms []*Match) Finding
}

// Finding is what a rule reports for one issue.
type Finding struct {
	Message string

	// Fixes are the candidate fixes in choice order.
	Fixes []*patch.Builder
}

// Match is one occurrence of a pattern.
type Match struct {
	// Node is the matched node.
	Node astutil.NodeIndex

	// Key groups occurrences of the same issue. An empty key is an issue of its own.
	Key string

	// Captures are named sub-nodes.
	Captures map[string]astutil.NodeIndex

	// Data is the rule specific payload.
	Data any
}

// Capture records the sub-node at c under name.
func (m *Match) Capture(name string, c inspector.Cursor) {
	if m.Captures == nil {
		m.Captures = make(map[string]astutil.NodeIndex)
	}

	m.Captures[name] = astutil.NodeIndexOf(c)
}

// Pass gives a rule read-only access to one unit of a package.
type Pass struct {
	Package *model.Package
	Unit    *model.Unit

	// Flags are the rule's configured options.
	Flags config.Flags
}

// Resolver returns the name resolution of the package.
func (p *Pass) Resolver() model.Resolver {
	return p.Package
}

// Info returns the type information of the package.
func (p *Pass) Info() *types.Info {
	return p.Package.Info
}

// Node returns the node referenced by idx.
func (p *Pass) Node(idx astutil.NodeIndex) ast.Node {
	return idx.Node(p.Package.Inspector)
}

// Cursor returns the cursor referenced by idx.
func (p *Pass) Cursor(idx astutil.NodeIndex) inspector.Cursor {
	return idx.Cursor(p.Package.Inspector)
}

// Captured returns the sub-node captured under name, or nil.
func (p *Pass) Captured(m *Match, name string) ast.Node {
	idx, ok := m.Captures[name]
	if !ok {
		return nil
	}

	return p.Node(idx)
}
