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

package run_test

import (
	"context"
	"testing"
)

func TestRefactor(t *testing.T) {
	t.Parallel()

	opts := options(renamer{name: "rename", prefix: "good"})

	res, err := opts.Refactor(context.Background(), load(t), 0)
	if err != nil {
		t.Fatalf("Refactor failed: %v", err)
	}

	const want = `package a

func goodOne() {}

//nolint:rename
func badTwo() {}

func goodThree() {}
`

	if got := string(res.Changed["a.go"]); got != want {
		t.Errorf("Got refactored:\n%s\nwant:\n%s", got, want)
	}

	if _, ok := res.Changed["gen.go"]; ok {
		t.Error("Generated file changed")
	}

	if res.Applied != 2 || res.Skipped != 0 {
		t.Errorf("Got %d applied, %d skipped, want 2 applied", res.Applied, res.Skipped)
	}
}

func TestRefactorConflict(t *testing.T) {
	t.Parallel()

	opts := options(renamer{name: "rename", prefix: "good"}, renamer{name: "other", prefix: "fine"})

	res, err := opts.Refactor(context.Background(), load(t), 0)
	if err != nil {
		t.Fatalf("Refactor failed: %v", err)
	}

	// "other" sorts first at the same position
	const want = `package a

func fineOne() {}

//nolint:rename
func fineTwo() {}

func fineThree() {}
`

	if got := string(res.Changed["a.go"]); got != want {
		t.Errorf("Got refactored:\n%s\nwant:\n%s", got, want)
	}

	if res.Applied != 3 || res.Skipped != 2 {
		t.Errorf("Got %d applied, %d skipped, want 3 applied, 2 skipped", res.Applied, res.Skipped)
	}
}

func TestRefactorChoice(t *testing.T) {
	t.Parallel()

	for _, choice := range []int{-1, 1} {
		res, err := options(renamer{name: "rename", prefix: "good"}).Refactor(context.Background(), load(t), choice)
		if err != nil {
			t.Fatalf("Refactor failed: %v", err)
		}

		if len(res.Changed) != 0 || res.Applied != 0 || len(res.Diagnostics) != 2 {
			t.Errorf("Got %d changed, %d applied, %d diagnostics with choice %d, want only diagnostics",
				len(res.Changed), res.Applied, len(res.Diagnostics), choice)
		}
	}
}
