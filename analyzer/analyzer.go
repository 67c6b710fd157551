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

package analyzer

import (
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/patchcheck/internal/registry"
)

// Public API constants for the patchcheck analyzer.
const (
	name = "patchcheck"
	doc  = `patchcheck finds bug patterns and suggests semantics-preserving fixes`
	url  = "https://pkg.go.dev/fillmore-labs.com/patchcheck"
)

// New creates a new instance of the patchcheck analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. For command-line use, the
// pre-configured [Analyzer] variable is typically sufficient.
func New(opts ...Option) *analysis.Analyzer {
	r := makeRunOptions(opts)

	a := r.analyzer()
	registerFlags(&a.Flags, r, true)

	return a
}

// Rule creates an analyzer running only the named rule, named after it.
// An unknown rule name makes the analyzer fail.
func Rule(rule string, opts ...Option) *analysis.Analyzer {
	r := makeRunOptions(opts)

	for _, other := range registry.Names() {
		r.rules.Enabled.Set(other, other == rule)
	}

	r.rules.Enabled.Set(rule, true)

	a := r.analyzer()
	a.Name = rule
	a.Doc = rule + ": unknown rule"

	for _, info := range registry.Infos() {
		if info.Name == rule {
			a.Doc = info.Doc
		}
	}

	registerFlags(&a.Flags, r, false)

	return a
}

// Analyzer is a pre-configured *[analysis.Analyzer] running every registered rule.
var Analyzer = New()
