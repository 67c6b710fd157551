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
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fillmore-labs.com/patchcheck/internal/model"
	"fillmore-labs.com/patchcheck/internal/run"
)

const (
	flagChoice = "choice"
	flagDiff   = "diff"
)

func (a *app) fixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [packages]",
		Short: "Apply verified fixes",
		Long: `Check the packages, "./..." by default, and apply the verified fixes.
When a diagnostic offers several fixes, --choice selects one; a fix
overlapping an already applied one is skipped. With --diff, the changes are
printed as a unified diff instead of being written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fix(cmd, args)
		},
	}

	cmd.Flags().Int(flagChoice, 0, "index of the fix to apply when several are offered")
	cmd.Flags().Bool(flagDiff, false, "print a unified diff instead of writing files")

	return cmd
}

func (a *app) fix(cmd *cobra.Command, patterns []string) error {
	ctx := cmd.Context()

	choice, err := cmd.Flags().GetInt(flagChoice)
	if err != nil {
		return err
	}

	printDiff, err := cmd.Flags().GetBool(flagDiff)
	if err != nil {
		return err
	}

	s, opts, pkgs, err := a.prepare(cmd, patterns)
	if err != nil {
		return err
	}

	changed, sources, applied, skipped, fixErr := refactorAll(ctx, opts, pkgs, choice)

	a.logger.LogAttrs(ctx, slog.LevelDebug, "Fix done",
		slog.Int("applied", applied), slog.Int("skipped", skipped), slog.Int("files", len(changed)))

	p := printer{w: a.stdout, base: baseDir(s.Dir)}
	paths := slices.Sorted(maps.Keys(changed))

	if printDiff {
		var patch strings.Builder

		for _, path := range paths {
			d, err := unifiedDiff(p.path(path), sources[path], changed[path])
			if err != nil {
				return err
			}

			patch.WriteString(d)
		}

		if _, err := fmt.Fprint(a.stdout, patch.String()); err != nil {
			return err
		}

		st, err := diffStats(patch.String())
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(a.stderr, st)

		return fixErr
	}

	for _, path := range paths {
		if err := writeFile(path, changed[path]); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.stderr, "Fixed %s\n", p.path(path))
	}

	_, _ = fmt.Fprintf(a.stderr, "Applied %d %s, skipped %d\n", applied, plural(applied, "fix", "fixes"), skipped)

	return fixErr
}

// refactorAll refactors every package and returns the new and the original
// content of each changed file.
func refactorAll(ctx context.Context, opts *run.Options, pkgs []*model.Package, choice int) (
	changed, sources map[string][]byte, applied, skipped int, err error,
) {
	changed, sources = make(map[string][]byte), make(map[string][]byte)

	var errs []error

	for _, pkg := range pkgs {
		res, err := opts.Refactor(ctx, pkg, choice)
		if err != nil {
			errs = append(errs, err)
		}

		applied += res.Applied
		skipped += res.Skipped

		for path, content := range res.Changed {
			changed[path] = content
		}

		for _, u := range pkg.Units {
			if _, ok := res.Changed[u.Path]; ok {
				sources[u.Path] = u.Content
			}
		}
	}

	return changed, sources, applied, skipped, errors.Join(errs...)
}

// writeFile replaces the content of an existing file, keeping its permissions.
func writeFile(path string, content []byte) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, content, fi.Mode().Perm())
}
