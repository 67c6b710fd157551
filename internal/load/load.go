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

// Package load builds program models of Go packages with go/packages.
package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/patchcheck/internal/directive"
	"fillmore-labs.com/patchcheck/internal/model"
)

// ErrNoPackages is returned when the patterns match no package.
var ErrNoPackages = errors.New("no packages to check")

// mode is what the rules need: syntax, types and type information.
const mode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedForTest |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedTypesSizes

// Config controls which packages are loaded.
type Config struct {
	// Dir is the directory patterns are resolved in, empty for the current one.
	Dir string

	// Tests includes test files.
	Tests bool

	// Logger receives packages with errors. Nil means [slog.Default].
	Logger *slog.Logger
}

// Packages loads the packages matching patterns.
//
// A package with errors is loaded as incomplete. When test files are
// included, a package is loaded once, as its test variant.
func (c Config) Packages(ctx context.Context, patterns ...string) ([]*model.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     c.Dir,
		Tests:   c.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", strings.Join(patterns, " "), err)
	}

	pkgs = selectPackages(pkgs)
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	imported := directive.NewFileSource(pkgs[0].Fset, os.ReadFile)
	result := make([]*model.Package, len(pkgs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pkg := range pkgs {
		g.Go(func() error {
			for _, e := range pkg.Errors {
				c.logger().LogAttrs(ctx, slog.LevelDebug, "Package has errors",
					slog.String("package", pkg.ID), slog.String("error", e.Error()))
			}

			m, err := model.New(model.Config{
				Fset:       pkg.Fset,
				Types:      pkg.Types,
				Info:       pkg.TypesInfo,
				Sizes:      pkg.TypesSizes,
				Files:      pkg.Syntax,
				ReadFile:   os.ReadFile,
				Incomplete: len(pkg.Errors) > 0 || pkg.IllTyped,
				Imported:   imported,
			})
			if err != nil {
				return fmt.Errorf("package %s: %w", pkg.ID, err)
			}

			result[i] = m

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.Default()
}

// selectPackages drops generated test mains, packages without type
// information and packages superseded by their test variant.
func selectPackages(pkgs []*packages.Package) []*packages.Package {
	variants := make(map[string]bool)

	for _, pkg := range pkgs {
		if pkg.ForTest != "" && pkg.ForTest == pkg.PkgPath {
			variants[pkg.PkgPath] = true
		}
	}

	selected := pkgs[:0:0]

	for _, pkg := range pkgs {
		switch {
		case pkg.Types == nil || pkg.TypesInfo == nil || len(pkg.Syntax) == 0:
			continue

		case strings.HasSuffix(pkg.ID, ".test"):
			continue // generated test main

		case pkg.ForTest == "" && variants[pkg.PkgPath]:
			continue
		}

		selected = append(selected, pkg)
	}

	return selected
}
