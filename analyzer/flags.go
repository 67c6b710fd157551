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

package analyzer

import (
	"flag"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/registry"
)

// registerFlags binds the [runOptions] values to command line flag values,
// with a boolean flag per rule when ruleFlags is set.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *runOptions, ruleFlags bool) {
	if flags == nil {
		flags = flag.CommandLine
	}

	if ruleFlags {
		for _, info := range registry.Infos() {
			flags.Var(NewRuleValue(&r.rules.Enabled, info.Name), info.Name, "enable "+info.Name+": "+info.Doc)
		}
	}

	flags.Var(NewBehaviorValue(&r.behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(NewBehaviorValue(&r.behavior, config.ErrorsAsWarnings), "errors-as-warnings", "demote errors to warnings")
	flags.IntVar(&r.choice, "choice", r.choice, "index of the suggested fix when several are offered, -1 for all")

	flags.Func("opt", "set a rule option as rule.key=value (repeatable)", func(s string) error {
		rule, key, value, err := config.ParseOption(s)
		if err != nil {
			return err
		}

		r.rules.SetOption(rule, key, value)

		return nil
	})

	flags.Func("severity", "override a rule severity as rule=LEVEL, LEVEL is OFF, INFO, WARN or ERROR (repeatable)", func(s string) error {
		rule, level, err := config.ParseLevelAssignment(s)
		if err != nil {
			return err
		}

		r.rules.SetLevel(rule, level)

		return nil
	})
}
