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

// Package analyzer implements the patchcheck static analysis pass.
//
// # Overview
//
// Patchcheck runs a set of rules over each package. A rule matches a bug
// pattern, verifies that its rewrite preserves semantics and reports a
// diagnostic with candidate fixes. A fix that can't be verified is withheld;
// the diagnostic is reported without it.
//
// # Rules
//
//   - donotmock: test doubles of types marked //patchcheck:donotmock
//   - dotimport: uses of dot imports, qualified
//   - narrowing: compound assignments with a narrowing conversion
//   - obsolete: deprecated io/ioutil functions, replaced from io and os
//   - testnotrun: test functions go test does not run, renamed
//
// # Example
//
// Before:
//
//	var total int16
//	var delta int64
//	total += int16(delta)
//
// After applying the suggested fix:
//
//	total = int16(int64(total) + delta)
//
// # Suppression
//
// A //nolint comment suppresses diagnostics on its line, or on the whole
// declaration when it is part of its doc comment. //nolint:patchcheck
// suppresses every rule, //nolint:narrowing a single one.
package analyzer
