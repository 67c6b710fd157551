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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"fillmore-labs.com/patchcheck/internal/report"
)

// palette holds the colors of one invocation.
type palette struct {
	err, warning, info, faint *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
		faint:   color.New(color.Faint),
	}

	for _, c := range [...]*color.Color{p.err, p.warning, p.info, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// colorEnabled decides the --color mode for output written to w.
// "auto" colorizes terminals unless NO_COLOR is set.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil

	case "never":
		return false, nil

	case "auto":
		f, ok := w.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}

		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil

	default:
		return false, fmt.Errorf("%w: invalid color mode %q", errUsage, mode)
	}
}

func (p palette) severity(s report.Severity) *color.Color {
	switch s {
	case report.Error:
		return p.err
	case report.Warning:
		return p.warning
	default:
		return p.info
	}
}

// printer writes diagnostics with paths relative to a base directory.
type printer struct {
	w       io.Writer
	colors  palette
	base    string
	verbose bool
}

func (p printer) path(name string) string {
	if p.base == "" {
		return name
	}

	if rel, err := filepath.Rel(p.base, name); err == nil {
		return rel
	}

	return name
}

// diagnostic prints one diagnostic, its further occurrences and, when
// verbose, why its fix was withheld.
func (p printer) diagnostic(d *report.Diagnostic) error {
	pos := d.Start
	pos.Filename = p.path(pos.Filename)

	_, err := fmt.Fprintf(p.w, "%s: %s %s %s\n",
		pos, p.colors.severity(d.Severity).Sprint(d.Severity), d.Message, p.colors.faint.Sprintf("(%s)", d.Rule))
	if err != nil {
		return err
	}

	for _, rel := range d.Related {
		pos := rel.Start
		pos.Filename = p.path(pos.Filename)

		if _, err := fmt.Fprintf(p.w, "\t%s: %s\n", pos, rel.Message); err != nil {
			return err
		}
	}

	if !p.verbose {
		return nil
	}

	switch {
	case !d.Withheld.Safe():
		_, err = fmt.Fprintf(p.w, "\tfix withheld: %s\n", d.Withheld)

	case len(d.Fixes) > 0:
		for i, fix := range d.Fixes {
			if _, err = fmt.Fprintf(p.w, "\tfix %d: %s\n", i, fix.Title); err != nil {
				break
			}
		}
	}

	return err
}
