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

package cli

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// unifiedDiff renders the change of one file in git style.
func unifiedDiff(name string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}

// stats summarizes a multi-file unified diff.
type stats struct {
	files, insertions, deletions int
}

func (s stats) String() string {
	return fmt.Sprintf("%d %s changed, %d %s(+), %d %s(-)",
		s.files, plural(s.files, "file", "files"),
		s.insertions, plural(s.insertions, "insertion", "insertions"),
		s.deletions, plural(s.deletions, "deletion", "deletions"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

// diffStats parses patch and counts changed files and lines.
func diffStats(patch string) (stats, error) {
	if strings.TrimSpace(patch) == "" {
		return stats{}, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(patch))
	if err != nil {
		return stats{}, fmt.Errorf("parsing diff: %w", err)
	}

	s := stats{files: len(fileDiffs)}

	for _, fd := range fileDiffs {
		st := fd.Stat()
		s.insertions += int(st.Added + st.Changed)
		s.deletions += int(st.Deleted + st.Changed)
	}

	return s, nil
}
