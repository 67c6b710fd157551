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
	"log/slog"

	"fillmore-labs.com/patchcheck/internal/config"
)

// Option configures specific behavior of a [New] patchcheck analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithErrorsAsWarnings is an [Option] to demote error severity diagnostics to warnings.
func WithErrorsAsWarnings(demote bool) Option { return errorsAsWarningsOption{demote: demote} }

type errorsAsWarningsOption struct{ demote bool }

func (o errorsAsWarningsOption) apply(r *runOptions) {
	r.behavior.Set(config.ErrorsAsWarnings, o.demote)
}

func (o errorsAsWarningsOption) LogAttr() slog.Attr {
	return slog.Bool("errors-as-warnings", o.demote)
}

// WithRule is an [Option] to enable or disable a single rule.
func WithRule(rule string, enabled bool) Option { return ruleOption{rule: rule, enabled: enabled} }

type ruleOption struct {
	rule    string
	enabled bool
}

func (o ruleOption) apply(r *runOptions) {
	r.rules.Enabled.Set(o.rule, o.enabled)
}

func (o ruleOption) LogAttr() slog.Attr {
	return slog.Bool(o.rule, o.enabled)
}

// WithRuleOption is an [Option] to set an option of a rule.
func WithRuleOption(rule, key, value string) Option {
	return ruleFlagOption{rule: rule, key: key, value: value}
}

type ruleFlagOption struct{ rule, key, value string }

func (o ruleFlagOption) apply(r *runOptions) {
	r.rules.SetOption(o.rule, o.key, o.value)
}

func (o ruleFlagOption) LogAttr() slog.Attr {
	return slog.String(o.rule+"."+o.key, o.value)
}

// WithSeverity is an [Option] to override the severity of a rule. [config.LevelOff] disables it.
func WithSeverity(rule string, level config.Level) Option {
	return severityOption{rule: rule, level: level}
}

type severityOption struct {
	rule  string
	level config.Level
}

func (o severityOption) apply(r *runOptions) {
	r.rules.SetLevel(o.rule, o.level)
}

func (o severityOption) LogAttr() slog.Attr {
	return slog.String(o.rule+".severity", o.level.String())
}

// WithFixChoice is an [Option] to select the suggested fix when a diagnostic
// offers several. A negative choice suggests all of them.
func WithFixChoice(choice int) Option { return fixChoiceOption{choice: choice} }

type fixChoiceOption struct{ choice int }

func (o fixChoiceOption) apply(r *runOptions) {
	r.choice = o.choice
}

func (o fixChoiceOption) LogAttr() slog.Attr {
	return slog.Int("choice", o.choice)
}
