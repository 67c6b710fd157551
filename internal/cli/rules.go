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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fillmore-labs.com/patchcheck/internal/registry"
)

func (a *app) rulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			_, _ = fmt.Fprintln(w, "RULE\tSEVERITY\tFIX\tDESCRIPTION")

			for _, info := range registry.Infos() {
				fix := "-"
				if info.Fixable {
					fix = "yes"
				}

				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, info.Severity, fix, info.Doc)
			}

			return w.Flush()
		},
	}
}
