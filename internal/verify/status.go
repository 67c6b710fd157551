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

package verify

import "fmt"

// Status indicates whether a rewrite is safe and, if not, why.
type Status uint8

//go:generate go tool stringer -type Status -linecomment
const (
	// Safe indicates the rewrite preserves semantics.
	Safe Status = iota // safe

	// Collision indicates a name introduced by the rewrite already binds something else.
	Collision // collision

	// Shadowed indicates an identifier of the rewritten text would bind differently at its new position.
	Shadowed // shadowed

	// Rebinding indicates the matched identifier does not resolve to the object the rule assumed.
	Rebinding // rebinding

	// SideEffect indicates the rewrite would evaluate an expression with side effects more than once.
	SideEffect // side-effect

	// TypeConflict indicates the rewritten code would not accept every use of the original value.
	TypeConflict // type-conflict

	// Unresolved indicates required semantic information is missing.
	Unresolved // unresolved
)

// Verdict is the outcome of verifying a match.
type Verdict struct {
	Status Status
	Reason string
}

// OK is the [Safe] verdict.
func OK() Verdict { return Verdict{} }

// Unsafe returns a verdict blocking the rewrite.
func Unsafe(status Status, format string, args ...any) Verdict {
	return Verdict{Status: status, Reason: fmt.Sprintf(format, args...)}
}

// Safe reports whether the rewrite may be offered.
func (v Verdict) Safe() bool { return v.Status == Safe }

// String returns the status and reason.
func (v Verdict) String() string {
	if v.Reason == "" {
		return v.Status.String()
	}

	return v.Status.String() + ": " + v.Reason
}

// First returns the first unsafe verdict, or [OK].
func First(verdicts ...Verdict) Verdict {
	for _, v := range verdicts {
		if !v.Safe() {
			return v
		}
	}

	return OK()
}
