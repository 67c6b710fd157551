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
	"go/types"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/patchcheck/internal/directive"
)

// marked is the fact carrying the directives of an exported type declaration.
type marked struct {
	Directives []string
}

func (*marked) AFact() {}

func (m *marked) String() string { return strings.Join(m.Directives, " ") }

// exportDirectives exports the directives of the package's exported types.
func exportDirectives(p *analysis.Pass) {
	for obj, names := range directive.Types(p.Files, p.TypesInfo) {
		if obj.Exported() {
			p.ExportObjectFact(obj, &marked{Directives: names})
		}
	}
}

// factSource reads directives of imported types from facts.
type factSource struct {
	mu   sync.Mutex
	pass *analysis.Pass
}

func (s *factSource) Directives(obj types.Object) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var m marked
	if s.pass.ImportObjectFact(obj, &m) {
		return m.Directives
	}

	return nil
}
