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

package match

import (
	"fillmore-labs.com/patchcheck/internal/astutil"
)

// Collect walks the unit in preorder and returns every match of r.
// Matches are independent; a match never hides a nested one.
func Collect(p *Pass, r Rule) []*Match {
	var matches []*Match

	for c := range p.Unit.Cursor.Preorder(r.Nodes()...) {
		m, ok := r.Match(p, c)
		if !ok {
			continue
		}

		m.Node = astutil.NodeIndexOf(c)
		matches = append(matches, &m)
	}

	return matches
}

// Group groups matches by key, in order of first occurrence.
func Group(matches []*Match) [][]*Match {
	var (
		groups [][]*Match
		index  = make(map[string]int)
	)

	for _, m := range matches {
		if m.Key == "" {
			groups = append(groups, []*Match{m})

			continue
		}

		if i, ok := index[m.Key]; ok {
			groups[i] = append(groups[i], m)

			continue
		}

		index[m.Key] = len(groups)
		groups = append(groups, []*Match{m})
	}

	return groups
}
