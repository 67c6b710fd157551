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

package analyzer_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	. "fillmore-labs.com/patchcheck/analyzer"
	"fillmore-labs.com/patchcheck/internal/config"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	tests := []struct {
		name    string
		dir     string
		options Option
		fix     bool
	}{
		{
			name: "Narrowing",
			dir:  "./narrowing",
			fix:  true,
		},
		{
			name: "Obsolete",
			dir:  "./obsolete",
			fix:  true,
		},
		{
			name:    "TestNotRun",
			dir:     "./testnotrun",
			options: WithFixChoice(0),
			fix:     true,
		},
		{
			name:    "Advisory",
			dir:     "./advisory",
			options: WithRuleOption("donotmock", "tests-only", "false"),
		},
		{
			name:    "ImportedMarker",
			dir:     "./donotmock/user",
			options: WithRuleOption("donotmock", "tests-only", "false"),
		},
		{
			name:    "Generated",
			dir:     "./generated",
			options: WithGenerated(false),
		},
		{
			name:    "Disabled",
			dir:     "./generated",
			options: Options{WithGenerated(true), WithRule("narrowing", false)},
		},
		{
			name:    "Off",
			dir:     "./generated",
			options: Options{WithGenerated(true), WithSeverity("narrowing", config.LevelOff)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if a := New(tt.options); tt.fix {
				analysistest.RunWithSuggestedFixes(t, testdata, a, tt.dir)
			} else {
				analysistest.Run(t, testdata, a, tt.dir)
			}
		})
	}
}

func TestRule(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	if a := Rule("narrowing"); a.Name != "narrowing" || a.Flags.Lookup("obsolete") != nil {
		t.Errorf("Got analyzer %s with rule flags, want narrowing without", a.Name)
	}

	analysistest.RunWithSuggestedFixes(t, testdata, Rule("narrowing"), "./narrowing")
	analysistest.Run(t, testdata, Rule("dotimport"), "./generated")
}
