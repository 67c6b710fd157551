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

package report

import "fillmore-labs.com/patchcheck/internal/config"

// Severity is the severity of a [Diagnostic].
type Severity uint8

//go:generate go tool stringer -type Severity -linecomment
const (
	Info    Severity = iota // info
	Warning                 // warning
	Error                   // error
)

// Effective applies a configured level and the global policy to the rule default.
// It returns false when the rule is turned off.
func (s Severity) Effective(level config.Level, errorsAsWarnings bool) (Severity, bool) {
	switch level {
	case config.LevelOff:
		return s, false

	case config.LevelInfo:
		s = Info

	case config.LevelWarning:
		s = Warning

	case config.LevelError:
		s = Error
	}

	if errorsAsWarnings && s == Error {
		s = Warning
	}

	return s, true
}
