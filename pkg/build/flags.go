// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yeetrun/clargs/pkg/spec"
)

// TypeFunc converts a raw command-line token to a typed value.
type TypeFunc func(string) (any, error)

// convFor resolves a type tag to its converter. The empty tag means str.
func (b *Builder) convFor(tag string) (TypeFunc, error) {
	switch tag {
	case "", "str":
		return func(s string) (any, error) { return s, nil }, nil
	case "int":
		return func(s string) (any, error) {
			n, err := strconv.Atoi(s)
			return n, err
		}, nil
	case "float":
		return func(s string) (any, error) {
			f, err := strconv.ParseFloat(s, 64)
			return f, err
		}, nil
	case "bool":
		return func(s string) (any, error) {
			v, err := strconv.ParseBool(s)
			return v, err
		}, nil
	}
	if fn, ok := b.types[tag]; ok {
		return fn, nil
	}
	return nil, &UnknownTypeError{Tag: tag}
}

// addFlag registers one flag spec on cmd. Persistent flags land on the
// persistent set and are inherited by every subcommand.
func (b *Builder) addFlag(cmd *cobra.Command, st *cmdState, a *spec.Argument, group string, persistent bool) error {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	name := a.FlagName()
	short := shorthand(a.Short)

	choices, err := a.ResolveChoices(b.reg)
	if err != nil {
		return err
	}
	def, err := a.EffectiveDefault(b.reg)
	if err != nil {
		return err
	}

	switch {
	case a.Action == "store_true":
		fs.BoolP(name, short, asBoolValue(def, false), a.Help)
	case a.Action == "store_false":
		// pflag bool flags set true on presence; the store_false shape is
		// a default of true negated with --name=false.
		fs.BoolP(name, short, asBoolValue(def, true), a.Help)
	case a.Action == "count":
		fs.CountP(name, short, a.Help)
	case a.Action == "append":
		fs.StringArrayP(name, short, asStringsValue(def), a.Help)
	case a.Action == "version":
		version := "dev"
		if def != nil {
			version = fmt.Sprint(def)
		}
		cmd.Root().Version = version
		return nil
	case a.Action == "help":
		// cobra installs its own help flag.
		return nil
	case multiValued(a.Nargs):
		fs.StringSliceP(name, short, asStringsValue(def), a.Help)
	default:
		if err := b.addScalarFlag(fs, a, name, short, def); err != nil {
			return err
		}
	}

	if a.Dest != "" {
		fs.SetAnnotation(name, destAnnotation, []string{a.Dest})
	}
	if group != "" {
		fs.SetAnnotation(name, groupAnnotation, []string{group})
	}
	if len(choices) > 0 {
		st.choices[name] = choices
		cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(choices, cobra.ShellCompDirectiveNoFileComp))
	}
	if flagRequired(a, def) {
		if persistent {
			cmd.MarkPersistentFlagRequired(name)
		} else {
			cmd.MarkFlagRequired(name)
		}
	}
	return nil
}

func (b *Builder) addScalarFlag(fs *pflag.FlagSet, a *spec.Argument, name, short string, def any) error {
	switch a.Type {
	case "", "str":
		fs.StringP(name, short, asStringValue(def), a.Help)
	case "int":
		fs.IntP(name, short, asIntValue(def), a.Help)
	case "float":
		fs.Float64P(name, short, asFloatValue(def), a.Help)
	case "bool":
		fs.BoolP(name, short, asBoolValue(def, false), a.Help)
	default:
		conv, err := b.convFor(a.Type)
		if err != nil {
			return err
		}
		fs.VarP(newConvValue(a.Type, conv, def), name, short, a.Help)
	}
	return nil
}

// flagRequired is the single policy point for the required flag: an
// argument with an effective default is never required, because the
// environment or configured default already satisfies it.
func flagRequired(a *spec.Argument, effective any) bool {
	return a.Required && effective == nil
}

// shorthand reduces a "-x" short spec to the single letter pflag accepts.
func shorthand(short string) string {
	for len(short) > 0 && short[0] == '-' {
		short = short[1:]
	}
	if len(short) != 1 {
		return ""
	}
	return short
}

// convValue adapts a registered TypeFunc to the pflag.Value interface.
type convValue struct {
	typeName string
	conv     TypeFunc
	raw      string
	val      any
}

func newConvValue(typeName string, conv TypeFunc, def any) *convValue {
	v := &convValue{typeName: typeName, conv: conv}
	if def != nil {
		v.raw = fmt.Sprint(def)
		v.val = def
	}
	return v
}

func (v *convValue) String() string { return v.raw }
func (v *convValue) Type() string   { return v.typeName }

func (v *convValue) Set(s string) error {
	val, err := v.conv(s)
	if err != nil {
		return err
	}
	v.raw, v.val = s, val
	return nil
}

// Default value coercion for flag registration. Effective defaults arrive
// as whatever the document or environment produced; flags need their
// declared Go type.

func asBoolValue(v any, fallback bool) bool {
	switch b := v.(type) {
	case nil:
		return fallback
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return fallback
}

func asIntValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return 0
}

func asFloatValue(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	case int64:
		return float64(f)
	case string:
		if parsed, err := strconv.ParseFloat(f, 64); err == nil {
			return parsed
		}
	}
	return 0
}

func asStringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func asStringsValue(v any) []string {
	switch s := v.(type) {
	case nil:
		return nil
	case []string:
		return s
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			out[i] = fmt.Sprint(item)
		}
		return out
	case string:
		return []string{s}
	}
	return []string{fmt.Sprint(v)}
}
