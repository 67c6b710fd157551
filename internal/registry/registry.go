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

// Package registry maps rule names to their constructors.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/rules/donotmock"
	"fillmore-labs.com/patchcheck/internal/rules/dotimport"
	"fillmore-labs.com/patchcheck/internal/rules/narrowing"
	"fillmore-labs.com/patchcheck/internal/rules/obsolete"
	"fillmore-labs.com/patchcheck/internal/rules/testnotrun"
)

// ErrUnknownRule is returned for a rule name that is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Constructor creates a rule from its options.
type Constructor func(config.Flags) (match.Rule, error)

var rules = map[string]Constructor{
	donotmock.Name:  donotmock.New,
	dotimport.Name:  dotimport.New,
	narrowing.Name:  narrowing.New,
	obsolete.Name:   obsolete.New,
	testnotrun.Name: testnotrun.New,
}

// Names returns the registered rule names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(rules))
}

// Infos describes every registered rule with its default options, in name order.
func Infos() []match.Info {
	names := Names()

	infos := make([]match.Info, 0, len(names))
	for _, name := range names {
		r, err := rules[name](config.Flags{})
		if err != nil {
			continue
		}

		infos = append(infos, r.Info())
	}

	return infos
}

// Lookup returns the constructor of the named rule.
func Lookup(name string) (Constructor, bool) {
	c, ok := rules[name]

	return c, ok
}

// New creates the named rule.
func New(name string, flags config.Flags) (match.Rule, error) {
	c, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}

	return c(flags)
}

// Rules creates every active rule of cfg in name order.
//
// Configuration for unknown rule names is an error unless
// [config.IgnoreUnknownRules] is set.
func Rules(cfg *config.Rules, behavior config.BitMask[config.Behavior]) ([]match.Rule, error) {
	if !behavior.Enabled(config.IgnoreUnknownRules) {
		var errs []error

		for _, name := range cfg.Mentioned() {
			if _, ok := rules[name]; !ok {
				errs = append(errs, fmt.Errorf("%w %q", ErrUnknownRule, name))
			}
		}

		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}

	var result []match.Rule

	for _, name := range Names() {
		if !cfg.Active(name) {
			continue
		}

		r, err := New(name, cfg.FlagsFor(name))
		if err != nil {
			return nil, err
		}

		result = append(result, r)
	}

	return result, nil
}
