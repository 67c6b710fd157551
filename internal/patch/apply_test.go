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
package patch_test

import (
	"errors"
	"testing"

	. "fillmore-labs.com/patchcheck/internal/patch"
)

func TestApply(t *testing.T) {
	t.Parallel()

	const src = "abcdef"

	tests := [...]struct {
		name  string
		edits []OffsetEdit
		want  string
		err   error
	}{
		{
			name:  "descending",
			edits: []OffsetEdit{{0, 1, "X"}, {4, 6, ""}, {2, 3, "Y"}},
			want:  "XbYd",
		},
		{
			name:  "insertions_keep_order",
			edits: []OffsetEdit{{1, 1, "A"}, {1, 1, "B"}},
			want:  "aABbcdef",
		},
		{
			name:  "duplicate",
			edits: []OffsetEdit{{0, 1, "X"}, {0, 1, "X"}},
			want:  "Xbcdef",
		},
		{
			name:  "insertion_at_end_of_span",
			edits: []OffsetEdit{{0, 3, "X"}, {3, 3, "Z"}},
			want:  "XZdef",
		},
		{
			name:  "insertion_at_start_of_span",
			edits: []OffsetEdit{{1, 3, "X"}, {1, 1, "Z"}},
			want:  "aZXdef",
		},
		{
			name:  "adjacent",
			edits: []OffsetEdit{{0, 2, "X"}, {2, 4, "Y"}},
			want:  "XYef",
		},
		{
			name:  "empty",
			edits: nil,
			want:  src,
		},
		{
			name:  "overlap",
			edits: []OffsetEdit{{0, 3, "X"}, {2, 4, "Y"}},
			err:   ErrOverlap,
		},
		{
			name:  "insertion_inside_span",
			edits: []OffsetEdit{{0, 3, ""}, {1, 1, "Z"}},
			err:   ErrOverlap,
		},
		{
			name:  "same_span_different_text",
			edits: []OffsetEdit{{0, 1, "X"}, {0, 1, "Y"}},
			err:   ErrOverlap,
		},
		{
			name:  "past_end",
			edits: []OffsetEdit{{5, 7, ""}},
			err:   ErrOutOfRange,
		},
		{
			name:  "negative",
			edits: []OffsetEdit{{-1, 0, ""}},
			err:   ErrOutOfRange,
		},
		{
			name:  "reversed",
			edits: []OffsetEdit{{3, 2, ""}},
			err:   ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := []byte(src)

			got, err := Apply(in, tt.edits)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Got error %v, want %v", err, tt.err)
			}

			if string(in) != src {
				t.Errorf("Apply modified its input: %q", in)
			}

			if tt.err == nil && string(got) != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	fix, err := NewBuilder("swap").
		ReplaceRange(10, 12, "b").
		ReplaceRange(1, 3, "a").
		AddImport("os", "").
		AddImport("os", "").
		RemoveImport("io/ioutil").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(fix.Edits) != 2 || fix.Edits[0].Pos != 1 || fix.Edits[1].Pos != 10 {
		t.Errorf("Got edits %v, want sorted by position", fix.Edits)
	}

	if len(fix.AddImports) != 1 || len(fix.RemoveImports) != 1 {
		t.Errorf("Got imports %v / %v, want one of each", fix.AddImports, fix.RemoveImports)
	}

	if _, err := NewBuilder("bad").ReplaceRange(1, 5, "a").ReplaceRange(3, 8, "b").Build(); !errors.Is(err, ErrOverlap) {
		t.Errorf("Got error %v, want %v", err, ErrOverlap)
	}
}

func TestConflict(t *testing.T) {
	t.Parallel()

	a := []Edit{{Pos: 1, End: 5}}

	if !Conflict(a, []Edit{{Pos: 4, End: 6}}) {
		t.Error("Expected overlapping spans to conflict")
	}

	if Conflict(a, []Edit{{Pos: 5, End: 6}}) {
		t.Error("Expected adjacent spans not to conflict")
	}

	if !Covers(a, 4) || Covers(a, 5) {
		t.Error("Expected Covers to treat spans as half-open")
	}
}
