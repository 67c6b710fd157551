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
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrOverlap is returned when two edits of one fix overlap.
	ErrOverlap = errors.New("overlapping edits")

	// ErrOutOfRange is returned when an edit lies outside the source text.
	ErrOutOfRange = errors.New("edit out of range")
)

// OffsetEdit replaces the bytes [Start, End) of a source text.
type OffsetEdit struct {
	Start, End int
	NewText    string
}

// Apply applies edits to src and returns the new text. src is not modified.
//
// Edits are validated first: every span must lie within src and no two spans
// may overlap. An insertion conflicts with a replacement when it falls strictly
// inside the replaced span. Identical edits are applied once; insertions at the
// same offset keep their order.
func Apply(src []byte, edits []OffsetEdit) ([]byte, error) {
	for _, e := range edits {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrOutOfRange, e.Start, e.End, len(src))
		}
	}

	sorted, err := normalize(edits)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(src)

	// Descending start offset keeps the offsets of the remaining edits valid.
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		out = slices.Replace(out, e.Start, e.End, []byte(e.NewText)...)
	}

	return out, nil
}

// normalize sorts edits by position, drops exact duplicates and checks for overlaps.
func normalize(edits []OffsetEdit) ([]OffsetEdit, error) {
	type indexed struct {
		OffsetEdit
		index int
	}

	sorted := make([]indexed, len(edits))
	for i, e := range edits {
		sorted[i] = indexed{e, i}
	}

	slices.SortFunc(sorted, func(a, b indexed) int {
		return cmp.Or(
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.End, b.End),
			cmp.Compare(a.index, b.index),
		)
	})

	result := make([]OffsetEdit, 0, len(sorted))

	var (
		last    OffsetEdit // last non-empty span
		hasLast bool
	)

	for _, e := range sorted {
		if n := len(result); n > 0 && result[n-1] == e.OffsetEdit {
			continue
		}

		if hasLast && conflicts(last, e.OffsetEdit) {
			return nil, fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap, last.Start, last.End, e.Start, e.End)
		}

		if e.Start < e.End {
			last, hasLast = e.OffsetEdit, true
		}

		result = append(result, e.OffsetEdit)
	}

	return result, nil
}

// conflicts reports whether e, starting at or after prev, overlaps the non-empty span prev.
func conflicts(prev, e OffsetEdit) bool {
	if e.Start == e.End {
		return prev.Start < e.Start && e.Start < prev.End
	}

	return e.Start < prev.End
}
