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

package config

import (
	"maps"
	"slices"
)

// RuleSet records rules that were explicitly enabled or disabled.
// Rules not mentioned are enabled.
type RuleSet struct {
	explicit map[string]bool
}

// Set enables or disables the named rule.
func (s *RuleSet) Set(name string, enabled bool) {
	if s.explicit == nil {
		s.explicit = make(map[string]bool)
	}

	s.explicit[name] = enabled
}

// Enabled reports whether the named rule is enabled.
func (s *RuleSet) Enabled(name string) bool {
	enabled, ok := s.explicit[name]

	return !ok || enabled
}

// Rules is the per-rule configuration: enablement, severity overrides and options.
type Rules struct {
	Enabled RuleSet
	Levels  map[string]Level
	Flags   map[string]Flags
}

// SetLevel overrides the severity of a rule. [LevelOff] disables it.
func (r *Rules) SetLevel(rule string, level Level) {
	if r.Levels == nil {
		r.Levels = make(map[string]Level)
	}

	r.Levels[rule] = level
}

// SetOption sets one option of a rule.
func (r *Rules) SetOption(rule, key, value string) {
	if r.Flags == nil {
		r.Flags = make(map[string]Flags)
	}

	f := r.Flags[rule]
	if f == nil {
		f = make(Flags)
		r.Flags[rule] = f
	}

	f[key] = value
}

// Level returns the configured severity override of a rule.
func (r *Rules) Level(rule string) Level {
	return r.Levels[rule]
}

// FlagsFor returns the options of a rule, never nil.
func (r *Rules) FlagsFor(rule string) Flags {
	if f := r.Flags[rule]; f != nil {
		return f
	}

	return Flags{}
}

// Active reports whether a rule should run.
func (r *Rules) Active(rule string) bool {
	return r.Enabled.Enabled(rule) && r.Level(rule) != LevelOff
}

// Mentioned returns every rule name that appears in the configuration, sorted.
func (r *Rules) Mentioned() []string {
	names := make(map[string]struct{})
	for name := range r.Enabled.explicit {
		names[name] = struct{}{}
	}

	for name := range r.Levels {
		names[name] = struct{}{}
	}

	for name := range r.Flags {
		names[name] = struct{}{}
	}

	return slices.Sorted(maps.Keys(names))
}
