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

package gclplugin

import (
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/patchcheck/analyzer"
	"fillmore-labs.com/patchcheck/internal/config"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Rules enables or disables single rules.
	Rules map[string]bool `json:"rules,omitzero"`
	// Severity overrides rule severities: off, info, warn or error.
	Severity map[string]string `json:"severity,omitzero"`
	// RuleOptions sets rule options, keyed by rule name.
	RuleOptions map[string]map[string]string `json:"options,omitzero"`
	// ErrorsAsWarnings demotes error severity diagnostics to warnings.
	ErrorsAsWarnings *bool `json:"errors-as-warnings,omitzero"`
	// Choice selects the suggested fix when several are offered, -1 for all.
	Choice *int `json:"choice,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the patchcheck analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() ([]analyzer.Option, error) {
	var opts []analyzer.Option

	for _, rule := range slices.Sorted(maps.Keys(s.Rules)) {
		opts = append(opts, analyzer.WithRule(rule, s.Rules[rule]))
	}

	for _, rule := range slices.Sorted(maps.Keys(s.Severity)) {
		level, err := config.ParseLevel(s.Severity[rule])
		if err != nil {
			return nil, fmt.Errorf("severity of %s: %w", rule, err)
		}

		opts = append(opts, analyzer.WithSeverity(rule, level))
	}

	for _, rule := range slices.Sorted(maps.Keys(s.RuleOptions)) {
		flags := s.RuleOptions[rule]
		for _, key := range slices.Sorted(maps.Keys(flags)) {
			opts = append(opts, analyzer.WithRuleOption(rule, key, flags[key]))
		}
	}

	opts = appendOption(opts, s.ErrorsAsWarnings, analyzer.WithErrorsAsWarnings)
	opts = appendOption(opts, s.Choice, analyzer.WithFixChoice)

	return opts, nil
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
