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

// Package checktest runs rules over in-memory sources in tests.
//
// [Helper] compares diagnostics with `// want "regexp"` comments on the
// lines they are expected at. [Refactoring] compares refactored sources with
// expected outputs and checks that a second refactoring changes nothing.
package checktest

import (
	"context"
	"log/slog"
	"testing"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/registry"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/run"
	"fillmore-labs.com/patchcheck/internal/testsource"
)

// base holds what both helpers share.
type base struct {
	tb       testing.TB
	rule     string
	flags    config.Flags
	level    config.Level
	behavior config.BitMask[config.Behavior]
}

func (b *base) setOption(key, value string) {
	if b.flags == nil {
		b.flags = make(config.Flags)
	}

	b.flags[key] = value
}

func (b *base) options() *run.Options {
	b.tb.Helper()

	r, err := registry.New(b.rule, b.flags)
	if err != nil {
		b.tb.Fatalf("Can't create rule %s: %v", b.rule, err)
	}

	opts := run.DefaultOptions()
	opts.Rules = []match.Rule{r}
	opts.Behavior = b.behavior
	opts.Logger = slog.New(slog.DiscardHandler)

	if b.level != config.LevelDefault {
		opts.Config.SetLevel(b.rule, b.level)
	}

	return opts
}

// Helper checks the diagnostics of one rule.
type Helper struct {
	base

	files    []testsource.File
	tolerant bool
}

// New returns a [Helper] for the named rule.
func New(tb testing.TB, rule string) *Helper {
	tb.Helper()

	return &Helper{base: base{tb: tb, rule: rule, behavior: config.DefaultBehavior()}}
}

// SetOption sets a rule option.
func (h *Helper) SetOption(key, value string) *Helper {
	h.setOption(key, value)

	return h
}

// SetLevel overrides the severity of the rule.
func (h *Helper) SetLevel(level config.Level) *Helper {
	h.level = level

	return h
}

// IncludeGenerated reports diagnostics in generated files.
func (h *Helper) IncludeGenerated() *Helper {
	h.behavior.Set(config.IncludeGenerated, true)

	return h
}

// AddSource adds a source file.
func (h *Helper) AddSource(path, src string) *Helper {
	h.files = append(h.files, testsource.File{Path: path, Src: src})

	return h
}

// AllowTypeErrors loads the sources as an incomplete program model.
func (h *Helper) AllowTypeErrors() *Helper {
	h.tolerant = true

	return h
}

// Diagnostics runs the rule and returns its diagnostics.
func (h *Helper) Diagnostics() []report.Diagnostic {
	h.tb.Helper()

	pkg := h.load()

	diags, err := h.options().Check(context.Background(), pkg)
	if err != nil {
		h.tb.Fatalf("Check failed: %v", err)
	}

	return diags
}

// Run checks the diagnostics against the `// want` comments of the sources.
func (h *Helper) Run() {
	h.tb.Helper()

	pkg := h.load()

	diags, err := h.options().Check(context.Background(), pkg)
	if err != nil {
		h.tb.Fatalf("Check failed: %v", err)
	}

	expectations := parseWants(h.tb, pkg)

	for i := range diags {
		d := &diags[i]
		if !expectations.match(d) {
			h.tb.Errorf("%s: unexpected diagnostic: %s", d.Start, d.Message)
		}
	}

	for _, e := range expectations.unmatched() {
		h.tb.Errorf("%s:%d: no diagnostic was reported matching %q", e.file, e.line, e.re)
	}
}

func (h *Helper) load() *model.Package {
	h.tb.Helper()

	if h.tolerant {
		return testsource.LoadIncomplete(h.tb, h.files...)
	}

	return testsource.Load(h.tb, h.files...)
}
