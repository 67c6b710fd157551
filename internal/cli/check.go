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

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/patchcheck/internal/load"
	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/report"
	"fillmore-labs.com/patchcheck/internal/run"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report diagnostics",
		Long:  "Check the packages, \"./...\" by default, and report diagnostics. Exits with status 3 when any are reported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args)
		},
	}
}

func (a *app) check(cmd *cobra.Command, patterns []string) error {
	ctx := cmd.Context()

	s, opts, pkgs, err := a.prepare(cmd, patterns)
	if err != nil {
		return err
	}

	diags, checkErr := checkAll(ctx, opts, pkgs)

	verbose, _ := cmd.Flags().GetBool(flagVerbose)
	p := printer{w: a.stdout, colors: a.colors, base: baseDir(s.Dir), verbose: verbose}

	for i := range diags {
		if err := p.diagnostic(&diags[i]); err != nil {
			return err
		}
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "Check done",
		slog.Int("packages", len(pkgs)), slog.Int("diagnostics", len(diags)))

	if checkErr != nil {
		return checkErr
	}

	if len(diags) > 0 {
		return ErrDiagnostics
	}

	return nil
}

// prepare loads the settings, builds the engine options and loads the packages.
func (a *app) prepare(cmd *cobra.Command, patterns []string) (*settings, *run.Options, []*model.Package, error) {
	ctx := cmd.Context()

	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	opts, err := s.options(ctx, a.logger)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := load.Config{Dir: s.Dir, Tests: s.Tests, Logger: a.logger}.Packages(ctx, patterns...)
	if err != nil {
		return nil, nil, nil, err
	}

	return s, opts, pkgs, nil
}

// checkAll checks the packages concurrently and returns all diagnostics in order.
func checkAll(ctx context.Context, opts *run.Options, pkgs []*model.Package) ([]report.Diagnostic, error) {
	results := make([][]report.Diagnostic, len(pkgs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pkg := range pkgs {
		g.Go(func() error {
			diags, err := opts.Check(ctx, pkg)
			results[i] = diags

			return err
		})
	}

	err := g.Wait()

	var all []report.Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}

	report.Sort(all)

	return report.Dedup(all), err
}

// baseDir returns the directory paths are printed relative to.
func baseDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	return abs
}
