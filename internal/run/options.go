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

package run

import (
	"log/slog"
	"runtime"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/match"
)

// Options configure a run of the engine.
type Options struct {
	// Rules are the rule instances to run.
	Rules []match.Rule

	// Config holds the severity overrides per rule.
	Config config.Rules

	// Behavior holds engine-wide switches.
	Behavior config.BitMask[config.Behavior]

	// Parallelism bounds the number of concurrently checked unit and rule pairs.
	// Zero means GOMAXPROCS.
	Parallelism int

	// Logger receives rule failures and malformed patches. Nil means [slog.Default].
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior: config.DefaultBehavior(),
	}
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func (o *Options) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}

	return runtime.GOMAXPROCS(0)
}

// LogValue implements [slog.LogValuer].
func (o *Options) LogValue() slog.Value {
	names := make([]string, len(o.Rules))
	for i, r := range o.Rules {
		names[i] = r.Info().Name
	}

	return slog.GroupValue(
		slog.Any("rules", names),
		slog.Bool("generated", o.Behavior.Enabled(config.IncludeGenerated)),
		slog.Bool("errors-as-warnings", o.Behavior.Enabled(config.ErrorsAsWarnings)),
		slog.Int("parallelism", o.parallelism()),
	)
}
