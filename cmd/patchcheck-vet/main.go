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

// Patchcheck-vet runs the patchcheck rules as a vet tool.
//
// Usage:
//
//	go vet -vettool=$(which patchcheck-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"

	"fillmore-labs.com/patchcheck/analyzer"
	"fillmore-labs.com/patchcheck/internal/registry"
)

func main() {
	names := registry.Names()

	analyzers := make([]*analysis.Analyzer, 0, len(names))
	for _, name := range names {
		analyzers = append(analyzers, analyzer.Rule(name))
	}

	multichecker.Main(analyzers...)
}
