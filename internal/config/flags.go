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
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned when a rule option can't be parsed.
var ErrInvalidOption = errors.New("invalid rule option")

// Flags holds the options of a single rule as raw strings.
//
// Rules read them with the typed getters at construction time.
type Flags map[string]string

// String returns the raw value of key and whether it is set.
func (f Flags) String(key string) (string, bool) {
	v, ok := f[key]

	return v, ok
}

// Bool returns the boolean value of key, or def when key is unset.
func (f Flags) Bool(key string, def bool) (bool, error) {
	v, ok := f[key]
	if !ok {
		return def, nil
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%w %s=%q: %w", ErrInvalidOption, key, v, err)
	}

	return b, nil
}

// List returns the comma separated values of key with empty elements removed.
func (f Flags) List(key string) []string {
	v, ok := f[key]
	if !ok {
		return nil
	}

	var list []string
	for elem := range strings.SplitSeq(v, ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}

	return list
}

// Keys returns the option names in sorted order.
func (f Flags) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// ParseOption splits a "rule.key=value" assignment.
func ParseOption(s string) (rule, key, value string, err error) {
	assignment, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", "", fmt.Errorf("%w %q: missing '='", ErrInvalidOption, s)
	}

	rule, key, ok = strings.Cut(assignment, ".")
	if !ok || rule == "" || key == "" {
		return "", "", "", fmt.Errorf("%w %q: want rule.key=value", ErrInvalidOption, s)
	}

	return rule, key, value, nil
}
