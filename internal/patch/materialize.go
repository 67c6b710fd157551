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
	"fmt"

	"fillmore-labs.com/patchcheck/internal/model"
)

// Materialize turns fixes that are applied together into sorted per-unit
// edits, import changes included.
func Materialize(pkg *model.Package, fixes ...Fix) (map[*model.Unit][]Edit, error) {
	type changes struct {
		edits  []Edit
		add    []Import
		remove []string
	}

	units := make(map[*model.Unit]*changes)

	for _, fix := range fixes {
		touched := make(map[*model.Unit]struct{})

		for _, e := range fix.Edits {
			u := pkg.UnitOf(e.Pos)
			if u == nil || !u.Contains(e.End) {
				return nil, fmt.Errorf("fix %q: %w: [%d, %d)", fix.Title, ErrOutOfRange, e.Pos, e.End)
			}

			c, ok := units[u]
			if !ok {
				c = &changes{}
				units[u] = c
			}

			c.edits = append(c.edits, e)
			touched[u] = struct{}{}
		}

		for u := range touched {
			c := units[u]
			c.add = append(c.add, fix.AddImports...)
			c.remove = append(c.remove, fix.RemoveImports...)
		}
	}

	result := make(map[*model.Unit][]Edit, len(units))

	for u, c := range units {
		edits, err := SortEdits(c.edits)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Path, err)
		}

		edits = append(edits, ImportEdits(u, pkg.Info, c.add, c.remove, edits)...)

		if edits, err = SortEdits(edits); err != nil {
			return nil, fmt.Errorf("%s: imports: %w", u.Path, err)
		}

		result[u] = edits
	}

	return result, nil
}

// Offsets converts the edits of one unit into byte offsets.
func Offsets(u *model.Unit, edits []Edit) ([]OffsetEdit, error) {
	offsets := make([]OffsetEdit, 0, len(edits))

	for _, e := range edits {
		start, ok1 := u.Offset(e.Pos)
		end, ok2 := u.Offset(e.End)

		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: %w: [%d, %d)", u.Path, ErrOutOfRange, e.Pos, e.End)
		}

		offsets = append(offsets, OffsetEdit{Start: start, End: end, NewText: e.NewText})
	}

	return offsets, nil
}

// ApplyUnit applies edits to the content of u.
func ApplyUnit(u *model.Unit, edits []Edit) ([]byte, error) {
	offsets, err := Offsets(u, edits)
	if err != nil {
		return nil, err
	}

	out, err := Apply(u.Content, offsets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u.Path, err)
	}

	return out, nil
}
