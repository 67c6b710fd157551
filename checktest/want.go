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

package checktest

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/report"
)

var wantPattern = regexp.MustCompile(`^//\s*want\s+(.*)$`)

// expectation is one expected diagnostic.
type expectation struct {
	file    string
	line    int
	re      *regexp.Regexp
	matched bool
}

type expectations []*expectation

// parseWants collects the `// want "re" ...` comments of all units.
func parseWants(tb testing.TB, pkg *model.Package) expectations {
	tb.Helper()

	var result expectations

	for _, u := range pkg.Units {
		for _, group := range u.File.Comments {
			for _, c := range group.List {
				m := wantPattern.FindStringSubmatch(c.Text)
				if m == nil {
					continue
				}

				line := u.Line(c.Pos())

				for rest := strings.TrimSpace(m[1]); rest != ""; rest = strings.TrimSpace(rest) {
					quoted, err := strconv.QuotedPrefix(rest)
					if err != nil {
						tb.Fatalf("%s:%d: malformed want comment: %v", u.Path, line, err)
					}

					rest = rest[len(quoted):]

					text, _ := strconv.Unquote(quoted)

					re, err := regexp.Compile(text)
					if err != nil {
						tb.Fatalf("%s:%d: invalid regular expression %q: %v", u.Path, line, text, err)
					}

					result = append(result, &expectation{file: u.Path, line: line, re: re})
				}
			}
		}
	}

	return result
}

// match marks the first unmatched expectation on the line of d that matches its message.
func (es expectations) match(d *report.Diagnostic) bool {
	for _, e := range es {
		if e.matched || e.file != d.Start.Filename || e.line != d.Start.Line || !e.re.MatchString(d.Message) {
			continue
		}

		e.matched = true

		return true
	}

	return false
}

func (es expectations) unmatched() []*expectation {
	var result []*expectation

	for _, e := range es {
		if !e.matched {
			result = append(result, e)
		}
	}

	return result
}
