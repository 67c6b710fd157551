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
	"strings"
)

// ErrInvalidLevel is returned for an unknown severity level.
var ErrInvalidLevel = errors.New("invalid severity level")

// Level is a configured severity override for a rule.
type Level uint8

//go:generate go tool stringer -type Level -linecomment
const (
	// LevelDefault keeps the rule's own severity.
	LevelDefault Level = iota // DEFAULT

	// LevelOff disables the rule.
	LevelOff // OFF

	// LevelInfo reports the rule as informational.
	LevelInfo // INFO

	// LevelWarning reports the rule as a warning.
	LevelWarning // WARN

	// LevelError reports the rule as an error.
	LevelError // ERROR
)

// ParseLevel parses a level name, case-insensitively. "WARNING" is accepted for [LevelWarning].
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DEFAULT":
		return LevelDefault, nil
	case "OFF":
		return LevelOff, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	}

	return LevelDefault, fmt.Errorf("%w %q", ErrInvalidLevel, s)
}

// ParseLevelAssignment parses a "rule=LEVEL" or "rule:LEVEL" override. A bare rule name means [LevelDefault].
func ParseLevelAssignment(s string) (string, Level, error) {
	rule, level, ok := strings.Cut(s, "=")
	if !ok {
		rule, level, _ = strings.Cut(s, ":")
	}

	rule = strings.TrimSpace(rule)
	if rule == "" {
		return "", LevelDefault, fmt.Errorf("%w %q: missing rule name", ErrInvalidLevel, s)
	}

	l, err := ParseLevel(level)
	if err != nil {
		return "", LevelDefault, err
	}

	return rule, l, nil
}
