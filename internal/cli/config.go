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
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fillmore-labs.com/patchcheck/internal/config"
	"fillmore-labs.com/patchcheck/internal/registry"
	"fillmore-labs.com/patchcheck/internal/run"
)

// Flag names.
const (
	flagConfig           = "config"
	flagDir              = "dir"
	flagTests            = "tests"
	flagGenerated        = "generated"
	flagErrorsAsWarnings = "errors-as-warnings"
	flagIgnoreUnknown    = "ignore-unknown"
	flagEnable           = "enable"
	flagDisable          = "disable"
	flagSeverity         = "severity"
	flagOption           = "opt"
	flagVerbose          = "verbose"
	flagColor            = "color"
)

// configName is the configuration file looked up in the working directory, without extension.
const configName = ".patchcheck"

// envPrefix prefixes environment variables, PATCHCHECK_GENERATED sets "generated".
const envPrefix = "PATCHCHECK"

// settings is the merged configuration of file, environment and flags.
type settings struct {
	Dir              string                       `mapstructure:"dir"`
	Tests            bool                         `mapstructure:"tests"`
	Generated        bool                         `mapstructure:"generated"`
	ErrorsAsWarnings bool                         `mapstructure:"errors-as-warnings"`
	IgnoreUnknown    bool                         `mapstructure:"ignore-unknown"`
	Rules            map[string]bool              `mapstructure:"rules"`
	Severity         map[string]string            `mapstructure:"severity"`
	Options          map[string]map[string]string `mapstructure:"options"`
}

// scalar flags bound to configuration keys of the same name.
var scalar = [...]string{flagDir, flagTests, flagGenerated, flagErrorsAsWarnings, flagIgnoreUnknown}

func registerFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, "", "configuration file (default "+configName+".yaml in the package directory)")
	flags.StringP(flagDir, "C", "", "change to this directory before loading packages")
	flags.Bool(flagTests, true, "include test files")
	flags.Bool(flagGenerated, false, "report diagnostics in generated files")
	flags.Bool(flagErrorsAsWarnings, false, "demote errors to warnings")
	flags.Bool(flagIgnoreUnknown, false, "accept configuration for unknown rules")
	flags.StringSlice(flagEnable, nil, "enable rules")
	flags.StringSlice(flagDisable, nil, "disable rules")
	flags.StringArray(flagSeverity, nil, "override a rule severity as rule=LEVEL, LEVEL is OFF, INFO, WARN or ERROR")
	flags.StringArray(flagOption, nil, "set a rule option as rule.key=value")
	flags.BoolP(flagVerbose, "v", false, "log debug information")
	flags.String(flagColor, "auto", "colorize output: auto, always or never")
}

// loadSettings merges the configuration file, PATCHCHECK_* environment
// variables and command line flags, in increasing precedence.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, name := range scalar {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}

	file, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)

		if dir := v.GetString(flagDir); dir != "" {
			v.AddConfigPath(dir)
		}

		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := s.applyFlags(flags); err != nil {
		return nil, err
	}

	return &s, nil
}

// applyFlags merges the repeatable rule flags into the maps from the configuration file.
func (s *settings) applyFlags(flags *pflag.FlagSet) error {
	for _, f := range [...]struct {
		name    string
		enabled bool
	}{{flagEnable, true}, {flagDisable, false}} {
		rules, err := flags.GetStringSlice(f.name)
		if err != nil {
			return err
		}

		for _, rule := range rules {
			s.Rules = setKey(s.Rules, rule, f.enabled)
		}
	}

	severities, err := flags.GetStringArray(flagSeverity)
	if err != nil {
		return err
	}

	for _, assignment := range severities {
		rule, level, err := config.ParseLevelAssignment(assignment)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		s.Severity = setKey(s.Severity, rule, level.String())
	}

	options, err := flags.GetStringArray(flagOption)
	if err != nil {
		return err
	}

	for _, assignment := range options {
		rule, key, value, err := config.ParseOption(assignment)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		s.Options = setKey(s.Options, rule, setKey(s.Options[rule], key, value))
	}

	return nil
}

func setKey[V any](m map[string]V, key string, value V) map[string]V {
	if m == nil {
		m = make(map[string]V)
	}

	m[key] = value

	return m
}

// options builds the engine options.
func (s *settings) options(ctx context.Context, logger *slog.Logger) (*run.Options, error) {
	opts := run.DefaultOptions()
	opts.Logger = logger

	opts.Behavior.Set(config.IncludeGenerated, s.Generated)
	opts.Behavior.Set(config.ErrorsAsWarnings, s.ErrorsAsWarnings)
	opts.Behavior.Set(config.IgnoreUnknownRules, s.IgnoreUnknown)

	for _, rule := range slices.Sorted(maps.Keys(s.Rules)) {
		opts.Config.Enabled.Set(rule, s.Rules[rule])
	}

	for _, rule := range slices.Sorted(maps.Keys(s.Severity)) {
		level, err := config.ParseLevel(s.Severity[rule])
		if err != nil {
			return nil, fmt.Errorf("severity of %s: %w", rule, err)
		}

		opts.Config.SetLevel(rule, level)
	}

	for rule, flags := range s.Options {
		for key, value := range flags {
			opts.Config.SetOption(rule, key, value)
		}
	}

	rules, err := registry.Rules(&opts.Config, opts.Behavior)
	if err != nil {
		return nil, err
	}

	opts.Rules = rules

	logger.LogAttrs(ctx, slog.LevelDebug, "Configuration", slog.Any("options", opts))

	return opts, nil
}
