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

// Package cli implements the patchcheck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// ErrDiagnostics is returned by the check command when it reported diagnostics.
var ErrDiagnostics = errors.New("diagnostics reported")

// Exit codes of [Main].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitDiagnostics = 3
)

// app carries the output streams and the logger of one invocation.
type app struct {
	stdout, stderr io.Writer
	logger         *slog.Logger
	colors         palette
}

// Main runs the command line with args and returns the exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	switch {
	case err == nil:
		return ExitOK

	case errors.Is(err, ErrDiagnostics):
		return ExitDiagnostics

	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintf(stderr, "patchcheck: %v\n", err)

		return ExitUsage

	default:
		_, _ = fmt.Fprintf(stderr, "patchcheck: %v\n", err)

		return ExitFailure
	}
}

// errUsage marks invalid command line arguments.
var errUsage = errors.New("usage")

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "patchcheck",
		Short: "Find bug patterns in Go code and apply verified fixes",
		Long: `patchcheck runs a set of rules over Go packages. Every rule matches a bug
pattern, verifies that its fix preserves semantics and reports a diagnostic.
Verified fixes can be applied with "patchcheck fix".`,
		Version:       version(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	registerFlags(root.PersistentFlags())

	root.AddCommand(
		a.checkCommand(),
		a.fixCommand(),
		a.rulesCommand(),
		a.versionCommand(),
	)

	return root
}

// setup installs the logger and the color mode.
func (a *app) setup(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool(flagVerbose)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	mode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		return err
	}

	enabled, err := colorEnabled(mode, a.stdout)
	if err != nil {
		return err
	}

	a.colors = newPalette(enabled)

	return nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "patchcheck", version())

			return err
		},
	}
}

// version returns the module version of the binary.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}

	return info.Main.Version
}
